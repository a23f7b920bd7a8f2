// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/benhills/icepack/msh"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// uniform returns a scalar field with the constant value v
func uniform(o *SSA, v float64) ScalarField {
	return o.Interpolate(func(x []float64) float64 { return v })
}

// findVert returns the id of the vertex at (x, y)
func findVert(tst *testing.T, m *msh.Mesh, x, y float64) int {
	for _, v := range m.Verts {
		if math.Abs(v.C[0]-x) < 1e-8 && math.Abs(v.C[1]-y) < 1e-8 {
			return v.Id
		}
	}
	tst.Fatalf("there is no vertex at (%g, %g)", x, y)
	return -1
}

func Test_ssa01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ssa01. fields, layout and argument checks")

	m, err := msh.GenRect("qua4", 4, 2, 4, 2, 0)
	if err != nil {
		tst.Errorf("mesh generation failed:\n%v", err)
		return
	}
	o, err := NewSSA(m, nil, nil)
	if err != nil {
		tst.Errorf("model allocation failed:\n%v", err)
		return
	}

	// the scalar interpolant matches the function at the vertices
	s := o.Interpolate(func(x []float64) float64 { return 1 + 2*x[0] - 3*x[1] })
	for _, v := range m.Verts {
		chk.Scalar(tst, io.Sf("s @ vert %d", v.Id), 1e-17, s[v.Id], 1+2*v.C[0]-3*v.C[1])
	}

	// vector coefficients live at 2*vid and 2*vid+1
	u := o.InterpolateVector(func(x []float64) (fx, fy float64) { return x[0], -x[1] })
	for _, v := range m.Verts {
		chk.Scalar(tst, io.Sf("ux @ vert %d", v.Id), 1e-17, u[2*v.Id], v.C[0])
		chk.Scalar(tst, io.Sf("uy @ vert %d", v.Id), 1e-17, u[2*v.Id+1], -v.C[1])
	}

	// uniform temperature by default
	chk.Scalar(tst, "default temperature", 1e-17, o.Temp[0], DefaultTemp)

	// mismatched discretisations are rejected
	if _, err := o.DrivingStress(s[:len(s)-1], s); err == nil {
		tst.Errorf("a short surface field must be rejected")
	}
	if _, err := o.Residual(s, s, s, u[:4], u); err == nil {
		tst.Errorf("a short velocity field must be rejected")
	}
	if _, err := o.TangentMatrix(s, s, s, append(u, 0)); err == nil {
		tst.Errorf("a long velocity field must be rejected")
	}

	// boundary conditions must reference existing face tags
	if err := o.SetBCs(map[int]BcKind{-77: BcDirichlet}); err == nil {
		tst.Errorf("an unknown face tag must be rejected")
	}
	if o.Dom == nil {
		tst.Errorf("a rejected boundary-condition map must keep the previous one")
		return
	}

	// solvers to come: they return copies of their inputs and say so
	h0 := uniform(o, 100)
	h1, err := o.PrognosticSolve(0.1, h0, uniform(o, 0), u)
	if err == nil {
		tst.Errorf("prognostic solve must report that it is not implemented")
	}
	chk.Vector(tst, "h1 == h0", 1e-17, h1, h0)
	lam, err := o.AdjointSolve(h0, h0, u, u)
	if err == nil {
		tst.Errorf("adjoint solve must report that it is not implemented")
	}
	chk.Vector(tst, "lambda == f", 1e-17, lam, u)
}

func Test_ssa02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ssa02. driving stress: linearity and total force")

	lx, ly := 10e3, 4e3
	m, err := msh.GenRect("qua4", lx, ly, 5, 2, 0)
	if err != nil {
		tst.Errorf("mesh generation failed:\n%v", err)
		return
	}
	o, err := NewSSA(m, nil, nil)
	if err != nil {
		tst.Errorf("model allocation failed:\n%v", err)
		return
	}

	// no calving front here: the load is the body term alone
	if err := o.SetBCs(map[int]BcKind{msh.TagLeft: BcDirichlet}); err != nil {
		tst.Errorf("SetBCs failed:\n%v", err)
		return
	}

	grad := -1e-3
	H := 1000.0
	h := uniform(o, H)
	s := o.Interpolate(func(x []float64) float64 { return H + grad*x[0] })
	tau, err := o.DrivingStress(s, h)
	if err != nil {
		tst.Errorf("driving-stress assembly failed:\n%v", err)
		return
	}

	// the equations sum to the total force −ρ·g·h·∂s/∂x·area
	tot := -o.Cst.RhoI * o.Cst.Grav * H * grad * lx * ly
	var sumx, sumy float64
	for _, v := range m.Verts {
		sumx += tau[2*v.Id]
		sumy += tau[2*v.Id+1]
	}
	io.Pfyel("Σ τx = %23.15e (total force %23.15e)\n", sumx, tot)
	chk.Scalar(tst, "Σ τx", 1e-8*tot, sumx, tot)
	chk.Scalar(tst, "Σ τy", 1e-8*tot, sumy, 0)

	// superposition in the surface at fixed thickness
	s2 := o.Interpolate(func(x []float64) float64 { return 5e-4*x[1] - 3e-4*x[0] })
	s12 := make(ScalarField, len(s))
	for i := range s12 {
		s12[i] = s[i] + s2[i]
	}
	tau2, err := o.DrivingStress(s2, h)
	if err != nil {
		tst.Errorf("driving-stress assembly failed:\n%v", err)
		return
	}
	tau12, err := o.DrivingStress(s12, h)
	if err != nil {
		tst.Errorf("driving-stress assembly failed:\n%v", err)
		return
	}
	sum := make(VectorField, len(tau))
	for i := range sum {
		sum[i] = tau[i] + tau2[i]
	}
	// the vertexwise sums s1+s2 round at ulp(s1), which the assembly
	// amplifies by ρ·g·h·area; the loads themselves are O(1e10)
	chk.Vector(tst, "τ(s1+s2) == τ(s1)+τ(s2)", 1, tau12, sum)

	// linearity in the thickness at fixed surface. doubling h scales every
	// product in the assembly by an exact power of two
	tau2h, err := o.DrivingStress(s, uniform(o, 2*H))
	if err != nil {
		tst.Errorf("driving-stress assembly failed:\n%v", err)
		return
	}
	twice := make(VectorField, len(tau))
	for i := range twice {
		twice[i] = 2 * tau[i]
	}
	chk.Vector(tst, "τ(s, 2h) == 2·τ(s, h)", 1e-17, tau2h, twice)
}

func Test_ssa03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ssa03. calving front: dry and submerged terminus")

	m, err := msh.GenRect("qua4", 1000, 1000, 2, 2, 0)
	if err != nil {
		tst.Errorf("mesh generation failed:\n%v", err)
		return
	}
	o, err := NewSSA(m, nil, nil) // default: inflow left, calving right
	if err != nil {
		tst.Errorf("model allocation failed:\n%v", err)
		return
	}

	// uniform surface: the body term vanishes and only the front remains
	H := 100.0
	h := uniform(o, H)
	sLand := uniform(o, 110) // bed at +10 m: dry terminus
	sMar := uniform(o, 50)   // bed at −50 m: submerged terminus

	tauL, err := o.DrivingStress(sLand, h)
	if err != nil {
		tst.Errorf("driving-stress assembly failed:\n%v", err)
		return
	}
	tauM, err := o.DrivingStress(sMar, h)
	if err != nil {
		tst.Errorf("driving-stress assembly failed:\n%v", err)
		return
	}

	// total force across the terminus, per metre of front
	pI := 0.5 * o.Cst.Grav * o.Cst.RhoI * H * H
	pW := 0.5 * o.Cst.Grav * o.Cst.RhoW * 50.0 * 50.0
	var sumL, sumM float64
	for _, v := range m.Verts {
		sumL += tauL[2*v.Id]
		sumM += tauM[2*v.Id]
	}
	io.Pfyel("front force: dry = %23.15e, submerged = %23.15e\n", sumL, sumM)
	chk.Scalar(tst, "dry front force", 1e-9*pI*1000, sumL, pI*1000)
	chk.Scalar(tst, "submerged front force", 1e-9*pI*1000, sumM, (pI-pW)*1000)

	// buoyancy scales every front node alike and pushes along +x only (the
	// flat body term leaves its roundoff in the y rows too)
	fac := (pI - pW) / pI
	for _, vid := range m.FaceTag2verts[msh.TagRight] {
		chk.Scalar(tst, io.Sf("ratio @ vert %d", vid), 1e-9*pI, tauM[2*vid], fac*tauL[2*vid])
		chk.Scalar(tst, io.Sf("τy @ vert %d", vid), 1e-4, tauM[2*vid+1], 0)
	}

	// away from the terminus only roundoff of the flat body term remains
	for _, v := range m.Verts {
		if v.C[0] < 999 {
			chk.Scalar(tst, io.Sf("τx @ vert %d", v.Id), 1e-4, tauL[2*v.Id], 0)
		}
	}
}

func Test_ssa04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ssa04. residual at zero velocity equals the load")

	m, err := msh.GenRect("tri6", 20e3, 10e3, 4, 2, 0)
	if err != nil {
		tst.Errorf("mesh generation failed:\n%v", err)
		return
	}
	o, err := NewSSA(m, nil, nil)
	if err != nil {
		tst.Errorf("model allocation failed:\n%v", err)
		return
	}

	h := uniform(o, 500)
	s := o.Interpolate(func(x []float64) float64 { return 600 - 1e-4*x[0] })
	beta := uniform(o, 1e8)
	f, err := o.DrivingStress(s, h)
	if err != nil {
		tst.Errorf("driving-stress assembly failed:\n%v", err)
		return
	}

	// M(0) = 0: membrane stress and drag both vanish
	u0 := make(VectorField, o.Dom.Ny)
	r, err := o.Residual(s, h, beta, u0, f)
	if err != nil {
		tst.Errorf("residual assembly failed:\n%v", err)
		return
	}
	for eq := 0; eq < o.Dom.Ny; eq++ {
		if o.Dom.DirMask[eq] {
			chk.Scalar(tst, io.Sf("r[%d] (dirichlet)", eq), 1e-17, r[eq], 0)
		} else {
			chk.Scalar(tst, io.Sf("r[%d]", eq), 1e-17, r[eq], f[eq])
		}
	}
}

func Test_ssa05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ssa05. tangent: symmetry and consistency")

	m, err := msh.GenRect("qua4", 10, 5, 3, 2, 0)
	if err != nil {
		tst.Errorf("mesh generation failed:\n%v", err)
		return
	}

	// unit rate factor keeps the numbers O(1)
	prms := fun.Prms{
		&fun.Prm{N: "A0c", V: 1},
		&fun.Prm{N: "Qc", V: 0},
		&fun.Prm{N: "A0w", V: 1},
		&fun.Prm{N: "Qw", V: 0},
	}
	o, err := NewSSA(m, prms, nil)
	if err != nil {
		tst.Errorf("model allocation failed:\n%v", err)
		return
	}

	// grounded everywhere (drag active), gentle thickness variation
	h := o.Interpolate(func(x []float64) float64 { return 2 + 0.01*x[0] })
	s := uniform(o, 0.5)
	beta := uniform(o, 0.5)
	u := o.InterpolateVector(func(x []float64) (fx, fy float64) {
		return 0.1*math.Sin(x[0]/3) + 0.05*x[1], 0.08*math.Cos(x[1]/2) + 0.02*x[0]
	})

	J, err := o.TangentMatrix(s, h, beta, u)
	if err != nil {
		tst.Errorf("tangent assembly failed:\n%v", err)
		return
	}
	A := J.ToDense()

	// symmetry to machine precision
	var maxa, asym float64
	for i := 0; i < o.Dom.Ny; i++ {
		for j := i; j < o.Dom.Ny; j++ {
			maxa = utl.Max(maxa, math.Abs(A[i][j]))
			asym = utl.Max(asym, math.Abs(A[i][j]-A[j][i]))
		}
	}
	io.Pfyel("max |J| = %v  max |J - Jᵀ| = %v\n", maxa, asym)
	if asym > 1e-13*maxa {
		tst.Errorf("tangent is not symmetric: max |J - Jᵀ| = %g", asym)
	}

	// directional-derivative consistency: with r = f − M(u),
	// r(u+hδ) − r(u) + h·J·δ shrinks like h² over three decades
	delta := o.InterpolateVector(func(x []float64) (fx, fy float64) {
		return 0.03 * math.Cos(x[0]/4) * x[1] / 5, 0.04 * math.Sin(x[1]/3+x[0]/7)
	})
	f := make(VectorField, o.Dom.Ny)
	r0, err := o.Residual(s, h, beta, u, f)
	if err != nil {
		tst.Errorf("residual assembly failed:\n%v", err)
		return
	}
	jd := make([]float64, o.Dom.Ny)
	J.MatVecMul(jd, delta)
	for _, eq := range o.Dom.DirEqs {
		jd[eq] = 0 // the residual rows are zeroed there as well
	}
	var qs []float64
	for _, hh := range []float64{1e-1, 1e-2, 1e-3} {
		up := make(VectorField, o.Dom.Ny)
		la.VecCopy(up, 1, u)
		la.VecAdd(up, hh, delta)
		r1, err := o.Residual(s, h, beta, up, f)
		if err != nil {
			tst.Errorf("residual assembly failed:\n%v", err)
			return
		}
		var emax float64
		for i := 0; i < o.Dom.Ny; i++ {
			emax = utl.Max(emax, math.Abs(r1[i]-r0[i]+hh*jd[i]))
		}
		io.Pfyel("h = %8.1e  max|e|/h² = %v\n", hh, emax/(hh*hh))
		qs = append(qs, emax/(hh*hh))
	}
	for k := 1; k < len(qs); k++ {
		ratio := qs[k] / qs[0]
		if ratio < 0.5 || ratio > 2 {
			tst.Errorf("tangent is inconsistent: remainder/h² drifts by %g×", ratio)
		}
	}
}

func Test_ssa06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ssa06. basal drag confined to grounded ice")

	lx, ly := 8000.0, 2000.0
	m, err := msh.GenRect("tri3", lx, ly, 8, 2, 0)
	if err != nil {
		tst.Errorf("mesh generation failed:\n%v", err)
		return
	}
	o, err := NewSSA(m, nil, nil)
	if err != nil {
		tst.Errorf("model allocation failed:\n%v", err)
		return
	}

	// surface above flotation on the left half, hydrostatic on the right
	H := 100.0
	hf := o.Cst.FlotThick(H)
	h := uniform(o, H)
	s := o.Interpolate(func(x []float64) float64 {
		if x[0] < lx/2 {
			return 1.5 * hf
		}
		return hf
	})
	betaval := 1e9
	beta := uniform(o, betaval)
	ux, uy := 1e-6, 5e-7
	u := o.InterpolateVector(func(x []float64) (fx, fy float64) { return ux, uy })

	// isolate the drag: subtract the frictionless residual
	zero := make(VectorField, o.Dom.Ny)
	rv, err := o.Residual(s, h, beta, u, zero)
	if err != nil {
		tst.Errorf("residual assembly failed:\n%v", err)
		return
	}
	r0, err := o.Residual(s, h, uniform(o, 0), u, zero)
	if err != nil {
		tst.Errorf("residual assembly failed:\n%v", err)
		return
	}

	// exactly zero wherever no supporting cell is above flotation; alive on
	// the grounded half
	var afloat, grounded float64
	for _, v := range m.Verts {
		dx := math.Abs(rv[2*v.Id] - r0[2*v.Id])
		dy := math.Abs(rv[2*v.Id+1] - r0[2*v.Id+1])
		if v.C[0] >= 5000 {
			afloat = utl.Max(afloat, utl.Max(dx, dy))
		}
		if v.C[0] >= 1000 && v.C[0] <= 3000 {
			grounded = utl.Max(grounded, utl.Max(dx, dy))
		}
	}
	io.Pfyel("max drag: afloat = %v  grounded = %v\n", afloat, grounded)
	chk.Scalar(tst, "no drag over floating ice", 1e-17, afloat, 0)
	if grounded < 1e6 {
		tst.Errorf("drag is missing over grounded ice: max contribution = %g", grounded)
	}

	// nodal value at an interior grounded vertex: −β·u·∫φ with ∫φ = area/3
	// over the six supporting triangles
	vid := findVert(tst, m, 2000, 1000)
	supp := 6.0 * (1000.0 * 1000.0 / 2.0) / 3.0
	chk.Scalar(tst, "drag x @ interior vert", 1e-3, rv[2*vid]-r0[2*vid], -betaval*ux*supp)
	chk.Scalar(tst, "drag y @ interior vert", 1e-3, rv[2*vid+1]-r0[2*vid+1], -betaval*uy*supp)
}
