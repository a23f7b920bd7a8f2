// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/benhills/icepack/mice"
	"github.com/benhills/icepack/msh"
	"github.com/benhills/icepack/shp"
	"github.com/benhills/icepack/sparse"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// ElemSSA implements the cell-local kernels of the shallow stream balance:
// the driving-stress load, the nonlinear membrane operator with basal drag,
// and the consistent tangent. Local equation r holds component i of node m
// with r = i + m*2; Umap takes r to the global equation 2*vid + i.
type ElemSSA struct {

	// basic data
	Cell *msh.Cell   // the cell
	X    [][]float64 // [2][nverts] matrix of vertex coordinates
	Shp  *shp.Shape  // shape structure
	Nu   int         // number of local equations = 2*nverts

	// models
	Ice *mice.Glen   // rheology
	Cst *mice.Consts // physical constants

	// integration points
	IpsElem []shp.Ipoint // integration points of the cell
	IpsFace []shp.Ipoint // integration points of faces

	// assembly maps
	Umap []int // [Nu] global equations of the velocity DoFs
	Smap []int // [nverts] coefficients of scalar fields (vertex ids)

	// boundary
	CalvFaces []int // local indices of faces on the calving front

	// scratchpad, computed @ each ip
	B  [][]float64 // [3][Nu] Mandel strain-displacement matrix
	D  [][]float64 // [3][3] viscosity tensor
	K  [][]float64 // [Nu][Nu] local tangent
	fi []float64   // [Nu] local internal forces
	ue []float64   // [Nu] local velocities
	gs []float64   // [2] surface gradient
	εv []float64   // [3] Mandel strain rate {εxx, εyy, √2·εxy}
	σv []float64   // [3] membrane stress D·ε
}

// newElemSSA allocates one element for cell c. calvFaces lists the local
// indices of the faces of c lying on the calving front.
func newElemSSA(c *msh.Cell, mesh *msh.Mesh, ice *mice.Glen, cst *mice.Consts, calvFaces []int) (o *ElemSSA, err error) {

	// basic data
	o = new(ElemSSA)
	o.Cell = c
	o.Shp = c.Shp
	nverts := o.Shp.Nverts
	o.Nu = 2 * nverts

	// coordinates and assembly maps
	o.X = la.MatAlloc(2, nverts)
	o.Umap = make([]int, o.Nu)
	o.Smap = make([]int, nverts)
	for m, vid := range c.Verts {
		v := mesh.Verts[vid]
		o.X[0][m] = v.C[0]
		o.X[1][m] = v.C[1]
		o.Smap[m] = vid
		o.Umap[0+m*2] = 2 * vid
		o.Umap[1+m*2] = 2*vid + 1
	}

	// models
	o.Ice = ice
	o.Cst = cst

	// integration points
	if o.IpsElem, err = shp.GetIps(o.Shp.Type, 0); err != nil {
		return nil, err
	}
	if o.IpsFace, err = shp.GetIps(o.Shp.FaceType, 0); err != nil {
		return nil, err
	}

	// boundary
	o.CalvFaces = calvFaces

	// scratchpad
	o.B = la.MatAlloc(3, o.Nu)
	o.D = la.MatAlloc(3, 3)
	o.K = la.MatAlloc(o.Nu, o.Nu)
	o.fi = make([]float64, o.Nu)
	o.ue = make([]float64, o.Nu)
	o.gs = make([]float64, 2)
	o.εv = make([]float64, 3)
	o.σv = make([]float64, 3)
	return
}

// AddToTau adds this cell's contribution to the driving-stress load vector:
// the body term −ρ_ice·g·h·(∇s·φ) over the cell and the hydrostatic traction
// ½·g·(ρ_ice·h² − ρ_water·d²)·(φ·n) over calving faces, where d = s − h is
// the bed elevation and the water term applies only for d < 0
func (o *ElemSSA) AddToTau(tau []float64, s, h []float64) (err error) {

	// body term
	for _, ip := range o.IpsElem {
		if err = o.ipvals(ip); err != nil {
			return
		}
		coef := o.Shp.J * ip[3]
		hq := o.ipscalar(h)
		o.ipgrad(o.gs, s)
		for m := 0; m < o.Shp.Nverts; m++ {
			for i := 0; i < 2; i++ {
				tau[o.Umap[i+m*2]] -= coef * o.Cst.RhoI * o.Cst.Grav * hq * o.Shp.S[m] * o.gs[i]
			}
		}
	}

	// front traction
	for _, iface := range o.CalvFaces {
		lverts := o.Shp.FaceLocalVerts[iface]
		for _, ipf := range o.IpsFace {
			if err = o.Shp.CalcAtFaceIp(o.X, ipf, iface); err != nil {
				return
			}
			var sq, hq float64
			for k, n := range lverts {
				sq += o.Shp.Sf[k] * s[o.Smap[n]]
				hq += o.Shp.Sf[k] * h[o.Smap[n]]
			}
			p := 0.5 * o.Cst.Grav * o.Cst.RhoI * hq * hq
			if d := sq - hq; d < 0 {
				p -= 0.5 * o.Cst.Grav * o.Cst.RhoW * d * d
			}
			for k, n := range lverts {
				for i := 0; i < 2; i++ {
					tau[o.Umap[i+n*2]] += ipf[3] * o.Shp.Sf[k] * p * o.Shp.Fnvec[i]
				}
			}
		}
	}
	return
}

// AddToRhs subtracts the momentum operator applied to u from fb:
//  fb[φ] −= ∫ (D·ε(u))·ε(φ) dΩ + ∫ frac·β·(u·φ) dΩ
// with D the nonlinear viscosity tensor and frac the drag-region indicator of
// the flotation predicate
func (o *ElemSSA) AddToRhs(fb []float64, s, h, beta, T, u []float64) (err error) {

	// gather local velocities
	for r, I := range o.Umap {
		o.ue[r] = u[I]
	}

	la.VecFill(o.fi, 0)
	for _, ip := range o.IpsElem {

		// interpolation @ ip
		if err = o.ipvals(ip); err != nil {
			return
		}
		coef := o.Shp.J * ip[3]
		hq := o.ipscalar(h)
		Tq := o.ipscalar(T)

		// membrane stress
		o.bmat()
		la.MatVecMul(o.εv, 1, o.B, o.ue) // ε := B * ue
		if err = o.Ice.CalcD(o.D, Tq, hq, o.εv); err != nil {
			return
		}
		la.MatVecMul(o.σv, 1, o.D, o.εv)         // σ := D * ε
		la.MatTrVecMulAdd(o.fi, coef, o.B, o.σv) // fi += coef * tr(B) * σ

		// basal drag where the surface is above flotation
		sq := o.ipscalar(s)
		if frac := o.Cst.FloatFrac(sq, hq); frac > 0 {
			cb := coef * frac * o.ipscalar(beta)
			for i := 0; i < 2; i++ {
				var uq float64
				for n := 0; n < o.Shp.Nverts; n++ {
					uq += o.Shp.S[n] * o.ue[i+n*2]
				}
				for m := 0; m < o.Shp.Nverts; m++ {
					o.fi[i+m*2] += cb * o.Shp.S[m] * uq
				}
			}
		}
	}

	// scatter
	for r, I := range o.Umap {
		fb[I] -= o.fi[r]
	}
	return
}

// AddToKb adds this cell's tangent to the global triplet. The membrane part
// uses the linearised viscosity tensor; the drag part is linear already.
func (o *ElemSSA) AddToKb(Kb *sparse.Triplet, s, h, beta, T, u []float64) (err error) {

	// gather local velocities
	for r, I := range o.Umap {
		o.ue[r] = u[I]
	}

	la.MatFill(o.K, 0)
	for _, ip := range o.IpsElem {

		// interpolation @ ip
		if err = o.ipvals(ip); err != nil {
			return
		}
		coef := o.Shp.J * ip[3]
		hq := o.ipscalar(h)
		Tq := o.ipscalar(T)

		// membrane part
		o.bmat()
		la.MatVecMul(o.εv, 1, o.B, o.ue)
		if err = o.Ice.CalcDlin(o.D, Tq, hq, o.εv); err != nil {
			return
		}
		la.MatTrMulAdd3(o.K, coef, o.B, o.D, o.B) // K += coef * tr(B) * D * B

		// drag part
		sq := o.ipscalar(s)
		if frac := o.Cst.FloatFrac(sq, hq); frac > 0 {
			cb := coef * frac * o.ipscalar(beta)
			for m := 0; m < o.Shp.Nverts; m++ {
				for n := 0; n < o.Shp.Nverts; n++ {
					cmn := cb * o.Shp.S[m] * o.Shp.S[n]
					o.K[0+m*2][0+n*2] += cmn
					o.K[1+m*2][1+n*2] += cmn
				}
			}
		}
	}

	// scatter
	for i, I := range o.Umap {
		for j, J := range o.Umap {
			Kb.Put(I, J, o.K[i][j])
		}
	}
	return
}

// Ipoints returns the real coordinates of the integration points of this cell
func (o *ElemSSA) Ipoints() (coords [][]float64) {
	coords = la.MatAlloc(len(o.IpsElem), 2)
	for idx, ip := range o.IpsElem {
		coords[idx] = o.Shp.IpRealCoords(o.X, ip)
	}
	return
}

// ipvals computes shape functions and gradients at ip and rejects degenerate
// geometry
func (o *ElemSSA) ipvals(ip shp.Ipoint) (err error) {
	if err = o.Shp.CalcAtIp(o.X, ip, true); err != nil {
		return
	}
	if o.Shp.J <= 0 {
		return chk.Err("cell %d is degenerate: jacobian determinant = %g", o.Cell.Id, o.Shp.J)
	}
	return
}

// ipscalar interpolates the scalar field f at the current integration point
func (o *ElemSSA) ipscalar(f []float64) (res float64) {
	for m := 0; m < o.Shp.Nverts; m++ {
		res += o.Shp.S[m] * f[o.Smap[m]]
	}
	return
}

// ipgrad computes the gradient g of the scalar field f at the current
// integration point
func (o *ElemSSA) ipgrad(g, f []float64) {
	g[0], g[1] = 0, 0
	for m := 0; m < o.Shp.Nverts; m++ {
		g[0] += o.Shp.G[m][0] * f[o.Smap[m]]
		g[1] += o.Shp.G[m][1] * f[o.Smap[m]]
	}
}

// bmat fills the Mandel strain-displacement matrix, such that B·ue is the
// strain rate {εxx, εyy, √2·εxy} at the current integration point
func (o *ElemSSA) bmat() {
	for m := 0; m < o.Shp.Nverts; m++ {
		o.B[0][0+m*2] = o.Shp.G[m][0]
		o.B[0][1+m*2] = 0
		o.B[1][0+m*2] = 0
		o.B[1][1+m*2] = o.Shp.G[m][1]
		o.B[2][0+m*2] = o.Shp.G[m][1] / math.Sqrt2
		o.B[2][1+m*2] = o.Shp.G[m][0] / math.Sqrt2
	}
}
