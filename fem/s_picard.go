// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/benhills/icepack/sparse"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Settings gathers the knobs of the nonlinear and linear solvers
type Settings struct {
	Tol     float64 // relative tolerance ‖r‖/‖τ‖ stopping the Picard iteration
	MaxIt   int     // cap on Picard iterations
	Alpha   float64 // damping of the velocity update
	AdaDamp bool    // grow the damping on monotone residual decrease, up to one
	CgTol   float64 // relative tolerance of the conjugate-gradient solver
	CgMaxIt int     // cap on conjugate-gradient iterations
	Verbose bool    // print the convergence table
}

// NewSettings returns settings with default values
func NewSettings() *Settings {
	return &Settings{
		Tol:     1e-10,
		MaxIt:   100,
		Alpha:   0.1,
		CgTol:   1e-12,
		CgMaxIt: 1000,
	}
}

// DiagnosticSolve computes the steady velocity of the momentum balance
//  M(u) = τ(s, h)
// by damped Picard iteration on the linearised operator. The initial guess
// u0 supplies the Dirichlet boundary values through its trace; the updates
// are zero on constrained equations, so those values reach the result bit
// for bit. On hitting MaxIt the last iterate is returned together with an
// error, leaving the caller free to inspect or restart.
func (o *SSA) DiagnosticSolve(s, h, beta ScalarField, u0 VectorField) (u VectorField, err error) {

	// check
	if err = o.checkFields(s, h, beta, u0); err != nil {
		return
	}

	// driving stress; its norm is the reference for convergence
	tau, err := o.DrivingStress(s, h)
	if err != nil {
		return nil, err
	}
	taunorm := la.VecNorm(tau)
	if taunorm == 0 {
		taunorm = 1 // unloaded problem: measure the residual absolutely
	}

	// start from the initial guess
	u = make(VectorField, o.Dom.Ny)
	la.VecCopy(u, 1, u0)

	// initial residual
	r, err := o.Residual(s, h, beta, u, tau)
	if err != nil {
		return nil, err
	}

	// allocations owned by this solve
	var Kb sparse.Triplet
	Kb.Init(o.Dom.Ny, o.Dom.Ny, o.Dom.NnzKb)
	du := make([]float64, o.Dom.Ny)

	// iterate
	α := o.Set.Alpha
	o.Rerr = math.MaxFloat64
	if o.Set.Verbose {
		io.Pf("%4s%10s%8s%25s\n", "it", "alpha", "cg", "‖r‖/‖τ‖")
	}
	for o.It = 1; o.It <= o.Set.MaxIt; o.It++ {

		// tangent @ current iterate
		Kb.Start()
		for _, e := range o.Dom.Elems {
			if err = e.AddToKb(&Kb, s, h, beta, o.Temp, u); err != nil {
				return nil, chk.Err("tangent assembly failed in cell %d:\n%v", e.Cell.Id, err)
			}
		}
		A := Kb.ToMatrix()

		// the update is homogeneous on Dirichlet equations
		if err = A.SetDirichlet(o.Dom.DirMask, r, nil); err != nil {
			return nil, err
		}

		// linear step
		la.VecFill(du, 0)
		nit, lerr := linsolve(A, du, r, o.Set)
		if lerr != nil {
			return u, chk.Err("linear step failed at iteration %d:\n%v", o.It, lerr)
		}

		// damped update and new residual
		la.VecAdd(u, α, du)
		if r, err = o.Residual(s, h, beta, u, tau); err != nil {
			return nil, err
		}
		rerr := la.VecNorm(r) / taunorm
		if o.Set.Verbose {
			io.Pf("%4d%10.4f%8d%25.15e\n", o.It, α, nit, rerr)
		}

		// convergence
		if rerr <= o.Set.Tol {
			o.Rerr = rerr
			return u, nil
		}

		// adaptive damping: grow on monotone decrease, reset on increase
		if o.Set.AdaDamp {
			if rerr < o.Rerr {
				α = utl.Min(1, 1.5*α)
			} else {
				α = o.Set.Alpha
			}
		}
		o.Rerr = rerr
	}
	o.It = o.Set.MaxIt
	return u, chk.Err("diagnostic solve did not converge after %d iterations: ‖r‖/‖τ‖ = %g is above tol = %g", o.Set.MaxIt, o.Rerr, o.Set.Tol)
}

// linsolve performs one linear step A·du = r with the conjugate-gradient
// method preconditioned by incomplete Cholesky; the Jacobi diagonal is the
// fallback when the factorisation breaks down
func linsolve(A *sparse.CRMatrix, du, r []float64, set *Settings) (nit int, err error) {
	var M sparse.Preconditioner
	if M, err = sparse.NewIC0(A); err != nil {
		if M, err = sparse.NewJacobi(A); err != nil {
			return 0, chk.Err("no usable preconditioner:\n%v", err)
		}
	}
	return sparse.PCG(A, M, du, r, set.CgTol, set.CgMaxIt)
}
