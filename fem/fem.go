// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fem solves the shallow stream approximation of ice-sheet flow with
// the finite element method: assembly of the driving-stress load, of the
// nonlinear membrane-stress balance with basal drag, of its consistent
// tangent, and the damped Picard iteration of the diagnostic (velocity)
// problem
package fem

import (
	"github.com/benhills/icepack/mice"
	"github.com/benhills/icepack/msh"
	"github.com/benhills/icepack/sparse"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/la"
)

// DefaultTemp is the uniform ice temperature a new model starts with [K]
const DefaultTemp = 263.15

// ScalarField holds the coefficients of a piecewise-polynomial scalar field;
// entry vid is the value at vertex vid of the mesh
type ScalarField []float64

// VectorField holds the coefficients of a 2-component vector field; entry
// 2*vid+i is component i at vertex vid of the mesh
type VectorField []float64

// SSA implements the shallow stream approximation over one mesh. A model
// keeps no state across solves apart from the temperature field and the
// convergence diagnostics; distinct instances on distinct meshes may run
// concurrently, a single instance must not.
type SSA struct {

	// essential
	Msh *msh.Mesh    // the mesh
	Cst *mice.Consts // physical constants
	Ice *mice.Glen   // Glen's-law rheology
	Set *Settings    // nonlinear and linear solver settings

	// fields
	Temp ScalarField // ice temperature [K]; uniform DefaultTemp unless replaced

	// derived
	Dom *Domain // equations, elements and boundary conditions

	// diagnostics of the last velocity solve
	It   int     // Picard iterations performed
	Rerr float64 // final relative residual ‖r‖/‖τ‖
}

// NewSSA allocates a shallow-stream model on mesh m. prms overrides the
// default physical constants and rheology parameters (see mice.NewConsts and
// mice.Glen.Init); set == nil means default settings. Boundary conditions
// start as DefaultBCs and can be replaced with SetBCs.
func NewSSA(m *msh.Mesh, prms fun.Prms, set *Settings) (o *SSA, err error) {
	o = new(SSA)
	o.Msh = m
	o.Cst = mice.NewConsts(prms)
	o.Ice = new(mice.Glen)
	if err = o.Ice.Init(prms); err != nil {
		return nil, chk.Err("cannot initialise rheology:\n%v", err)
	}
	o.Set = set
	if o.Set == nil {
		o.Set = NewSettings()
	}
	o.Temp = make(ScalarField, len(m.Verts))
	la.VecFill(o.Temp, DefaultTemp)
	o.Dom, err = NewDomain(m, o.Ice, o.Cst, DefaultBCs())
	if err != nil {
		return nil, err
	}
	return
}

// SetBCs rebinds the boundary conditions, mapping mesh face tags to condition
// kinds. Tags absent from the map keep the natural (traction-free) condition.
// On failure the previous conditions remain bound.
func (o *SSA) SetBCs(bcs map[int]BcKind) (err error) {
	d, err := NewDomain(o.Msh, o.Ice, o.Cst, bcs)
	if err != nil {
		return err
	}
	o.Dom = d
	return
}

// Interpolate returns the coefficients of the piecewise-polynomial
// interpolant of f, i.e. f evaluated at the mesh vertices
func (o *SSA) Interpolate(f func(x []float64) float64) ScalarField {
	res := make(ScalarField, len(o.Msh.Verts))
	for _, v := range o.Msh.Verts {
		res[v.Id] = f(v.C)
	}
	return res
}

// InterpolateVector is Interpolate for 2-component vector fields
func (o *SSA) InterpolateVector(f func(x []float64) (fx, fy float64)) VectorField {
	res := make(VectorField, o.Dom.Ny)
	for _, v := range o.Msh.Verts {
		res[2*v.Id], res[2*v.Id+1] = f(v.C)
	}
	return res
}

// DrivingStress assembles the driving-stress load vector
//  τ[φ] = −∫ ρ_ice·g·h·(∇s·φ) dΩ + ∫ ½·g·(ρ_ice·h² − ρ_water·d²)·(φ·n) dΓ
// the boundary integral over calving faces only, with d = s − h the bed
// elevation (the water term applies only where the bed is below sea level).
//  Input:
//   s -- surface elevation [m]
//   h -- ice thickness [m]
func (o *SSA) DrivingStress(s, h ScalarField) (tau VectorField, err error) {
	if err = o.checkScalar("s", s); err != nil {
		return
	}
	if err = o.checkScalar("h", h); err != nil {
		return
	}
	tau = make(VectorField, o.Dom.Ny)
	for _, e := range o.Dom.Elems {
		if err = e.AddToTau(tau, s, h); err != nil {
			return nil, chk.Err("driving-stress assembly failed in cell %d:\n%v", e.Cell.Id, err)
		}
	}
	return
}

// Residual evaluates the nonlinear residual
//  r = f − M(u)
// where M gathers the membrane-stress operator and, where the surface is
// above flotation, the basal drag β·u. Rows of Dirichlet-constrained
// equations are zeroed: the condition there is the prescribed value, not a
// force balance.
//  Input:
//   s, h  -- surface elevation and thickness [m]
//   beta  -- basal drag coefficient [Pa·s/m]
//   u     -- velocity [m/s]
//   f     -- load vector, usually the driving stress
func (o *SSA) Residual(s, h, beta ScalarField, u, f VectorField) (r VectorField, err error) {
	if err = o.checkFields(s, h, beta, u); err != nil {
		return
	}
	if err = o.checkVector("f", f); err != nil {
		return
	}
	r = make(VectorField, o.Dom.Ny)
	la.VecCopy(r, 1, f)
	for _, e := range o.Dom.Elems {
		if err = e.AddToRhs(r, s, h, beta, o.Temp, u); err != nil {
			return nil, chk.Err("residual assembly failed in cell %d:\n%v", e.Cell.Id, err)
		}
	}
	for _, eq := range o.Dom.DirEqs {
		r[eq] = 0
	}
	return
}

// TangentMatrix assembles the Gâteaux derivative of the momentum operator M
// at u, in compressed-row form. The matrix is symmetric. Boundary conditions
// are not applied here; the linear step of the solver condenses them with
// sparse.CRMatrix.SetDirichlet.
func (o *SSA) TangentMatrix(s, h, beta ScalarField, u VectorField) (J *sparse.CRMatrix, err error) {
	if err = o.checkFields(s, h, beta, u); err != nil {
		return
	}
	var Kb sparse.Triplet
	Kb.Init(o.Dom.Ny, o.Dom.Ny, o.Dom.NnzKb)
	for _, e := range o.Dom.Elems {
		if err = e.AddToKb(&Kb, s, h, beta, o.Temp, u); err != nil {
			return nil, chk.Err("tangent assembly failed in cell %d:\n%v", e.Cell.Id, err)
		}
	}
	return Kb.ToMatrix(), nil
}

// PrognosticSolve will advance the ice thickness over the step dt with the
// mass balance ∂h/∂t + ∇·(h·u) = a, given the accumulation rate a and the
// velocity u. It is not implemented yet: the result is a copy of h0,
// alongside an error saying so.
func (o *SSA) PrognosticSolve(dt float64, h0, a ScalarField, u VectorField) (h ScalarField, err error) {
	if err = o.checkScalar("h0", h0); err != nil {
		return
	}
	if err = o.checkScalar("a", a); err != nil {
		return
	}
	if err = o.checkVector("u", u); err != nil {
		return
	}
	h = make(ScalarField, len(h0))
	copy(h, h0)
	return h, chk.Err("prognostic solve is not implemented")
}

// AdjointSolve will solve the adjoint of the diagnostic problem for the dual
// load f, the building block of gradient-based inversions for the drag
// coefficient. It is not implemented yet: the result is a copy of f,
// alongside an error saying so.
func (o *SSA) AdjointSolve(h, beta ScalarField, u0, f VectorField) (lambda VectorField, err error) {
	if err = o.checkScalar("h", h); err != nil {
		return
	}
	if err = o.checkScalar("beta", beta); err != nil {
		return
	}
	if err = o.checkVector("u0", u0); err != nil {
		return
	}
	if err = o.checkVector("f", f); err != nil {
		return
	}
	lambda = make(VectorField, len(f))
	copy(lambda, f)
	return lambda, chk.Err("adjoint solve is not implemented")
}

// checkScalar returns an error unless f has one coefficient per mesh vertex
func (o *SSA) checkScalar(name string, f ScalarField) error {
	if len(f) != len(o.Msh.Verts) {
		return chk.Err("scalar field %q has %d coefficients; this mesh needs %d (one per vertex)", name, len(f), len(o.Msh.Verts))
	}
	return nil
}

// checkVector returns an error unless f has two coefficients per mesh vertex
func (o *SSA) checkVector(name string, f VectorField) error {
	if len(f) != o.Dom.Ny {
		return chk.Err("vector field %q has %d coefficients; this mesh needs %d (two per vertex)", name, len(f), o.Dom.Ny)
	}
	return nil
}

// checkFields checks the common arguments of the momentum operators,
// including the temperature field held by the model
func (o *SSA) checkFields(s, h, beta ScalarField, u VectorField) (err error) {
	if err = o.checkScalar("s", s); err != nil {
		return
	}
	if err = o.checkScalar("h", h); err != nil {
		return
	}
	if err = o.checkScalar("beta", beta); err != nil {
		return
	}
	if err = o.checkScalar("T", o.Temp); err != nil {
		return
	}
	return o.checkVector("u", u)
}
