// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Preconditioner applies z = M⁻¹ * r within the conjugate-gradient iterations
type Preconditioner interface {
	Apply(z, r []float64)
}

// PCG solves R*u = b with the preconditioned conjugate-gradient method
//  Input:
//   R     -- symmetric positive-definite matrix
//   M     -- preconditioner; nil means plain conjugate gradients
//   b     -- right-hand side
//   tol   -- tolerance for the relative residual ‖b - R*u‖/‖b‖
//   itmax -- maximum number of iterations
//  Input/Output:
//   u -- initial guess on input; solution on output
//  Output:
//   nit -- number of iterations performed
//  Note: on non-convergence, u holds the last iterate and an error is returned
func PCG(R *CRMatrix, M Preconditioner, u, b []float64, tol float64, itmax int) (nit int, err error) {

	// check
	m, n := R.Dims()
	if m != n || len(u) != n || len(b) != n {
		err = chk.Err("PCG needs a square system. m=%d n=%d len(u)=%d len(b)=%d is invalid", m, n, len(u), len(b))
		return
	}

	// auxiliary vectors
	r := make([]float64, n) // residual
	z := make([]float64, n) // preconditioned residual
	d := make([]float64, n) // search direction
	q := make([]float64, n) // R*d

	// initial residual r = b - R*u
	R.MatVecMul(r, u)
	for i := 0; i < n; i++ {
		r[i] = b[i] - r[i]
	}
	bnorm := la.VecNorm(b)
	if bnorm == 0 {
		bnorm = 1
	}
	if la.VecNorm(r) <= tol*bnorm {
		return
	}

	// first search direction
	applypc(M, z, r)
	copy(d, z)
	rz := vecdot(r, z)

	// iterations. the residual update is replaced by the exact residual
	// every recomp iterations to limit the accumulation of roundoff.
	recomp := 50
	for nit = 1; nit <= itmax; nit++ {

		// step length
		R.MatVecMul(q, d)
		dq := vecdot(d, q)
		if dq <= 0 {
			err = chk.Err("PCG breakdown at iteration %d: matrix is not positive definite (d·q=%g)", nit, dq)
			return
		}
		α := rz / dq

		// update solution and residual
		for i := 0; i < n; i++ {
			u[i] += α * d[i]
		}
		if nit%recomp == 0 {
			R.MatVecMul(r, u)
			for i := 0; i < n; i++ {
				r[i] = b[i] - r[i]
			}
		} else {
			for i := 0; i < n; i++ {
				r[i] -= α * q[i]
			}
		}

		// check convergence
		if la.VecNorm(r) <= tol*bnorm {
			return
		}

		// next search direction
		applypc(M, z, r)
		rznew := vecdot(r, z)
		β := rznew / rz
		for i := 0; i < n; i++ {
			d[i] = z[i] + β*d[i]
		}
		rz = rznew
	}
	nit = itmax
	err = chk.Err("PCG did not converge after %d iterations: ‖r‖/‖b‖=%g is greater than tol=%g", itmax, la.VecNorm(r)/bnorm, tol)
	return
}

// applypc applies the preconditioner; a nil preconditioner is the identity
func applypc(M Preconditioner, z, r []float64) {
	if M == nil {
		copy(z, r)
		return
	}
	M.Apply(z, r)
}

// vecdot returns the dot product of u and v
func vecdot(u, v []float64) (res float64) {
	for i := 0; i < len(u); i++ {
		res += u[i] * v[i]
	}
	return
}
