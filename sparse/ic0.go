// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// IC0 is an incomplete Cholesky preconditioner with zero fill-in: the factor L
// keeps the lower-triangle sparsity pattern of the input matrix. Rows of L are
// stored with ascending columns; the diagonal is the last entry of each row.
type IC0 struct {
	n int       // dimension
	p []int     // row pointers (len==n+1)
	i []int     // column indices (len==nnz of lower triangle)
	x []float64 // values of L
}

// NewIC0 computes the incomplete Cholesky factorisation of the symmetric
// positive-definite matrix R. If a pivot becomes non-positive, the
// factorisation is retried with an increasing diagonal shift; when all
// attempts fail an error is returned and the caller should fall back to a
// simpler preconditioner.
func NewIC0(R *CRMatrix) (M *IC0, err error) {

	// check
	m, n := R.Dims()
	if m != n {
		return nil, chk.Err("IC0 needs a square matrix. %d x %d is invalid", m, n)
	}

	// extract the lower-triangle pattern
	M = new(IC0)
	M.n = n
	M.p = make([]int, n+1)
	for r := 0; r < n; r++ {
		hasdiag := false
		for k := R.p[r]; k < R.p[r+1]; k++ {
			if R.i[k] <= r {
				M.p[r+1]++
			}
			if R.i[k] == r {
				hasdiag = true
			}
		}
		if !hasdiag {
			return nil, chk.Err("IC0: equation %d has no diagonal entry", r)
		}
	}
	for r := 0; r < n; r++ {
		M.p[r+1] += M.p[r]
	}
	nnz := M.p[n]
	M.i = make([]int, nnz)
	M.x = make([]float64, nnz)
	a := make([]float64, nnz) // lower triangle of R; kept unchanged for retries
	for r, pos := 0, 0; r < n; r++ {
		for k := R.p[r]; k < R.p[r+1]; k++ {
			if R.i[k] <= r {
				M.i[pos] = R.i[k]
				a[pos] = R.x[k]
				pos++
			}
		}
	}

	// factorise, shifting the diagonal on breakdown
	shift := 0.0
	for attempt := 0; attempt < 6; attempt++ {
		if M.factorise(a, shift) {
			return M, nil
		}
		if shift == 0 {
			shift = 1e-3
		} else {
			shift *= 10
		}
	}
	return nil, chk.Err("IC0 breakdown: non-positive pivot even with diagonal shift %g", shift)
}

// factorise runs one incomplete factorisation attempt with the diagonal of the
// input amplified by (1 + shift). Returns false on a non-positive pivot.
func (o *IC0) factorise(a []float64, shift float64) bool {
	for r := 0; r < o.n; r++ {

		// off-diagonal entries: L[r][c] = (a[r][c] - L.row(r)·L.row(c)) / L[c][c]
		// where the row product runs over the common columns before c
		for k := o.p[r]; k < o.p[r+1]-1; k++ {
			c := o.i[k]
			sum := 0.0
			kr, kc := o.p[r], o.p[c]
			for kr < k && kc < o.p[c+1]-1 {
				if o.i[kr] == o.i[kc] {
					sum += o.x[kr] * o.x[kc]
					kr++
					kc++
				} else if o.i[kr] < o.i[kc] {
					kr++
				} else {
					kc++
				}
			}
			o.x[k] = (a[k] - sum) / o.x[o.p[c+1]-1]
		}

		// diagonal entry
		sum := 0.0
		for k := o.p[r]; k < o.p[r+1]-1; k++ {
			sum += o.x[k] * o.x[k]
		}
		kd := o.p[r+1] - 1
		v := a[kd]*(1.0+shift) - sum
		if v <= 0 {
			return false
		}
		o.x[kd] = math.Sqrt(v)
	}
	return true
}

// Apply solves L*Lᵀ*z = r by forward and back substitution
func (o *IC0) Apply(z, r []float64) {

	// forward: L*y = r, with y stored in z
	for i := 0; i < o.n; i++ {
		s := r[i]
		for k := o.p[i]; k < o.p[i+1]-1; k++ {
			s -= o.x[k] * z[o.i[k]]
		}
		z[i] = s / o.x[o.p[i+1]-1]
	}

	// backward: Lᵀ*z = y
	for i := o.n - 1; i >= 0; i-- {
		z[i] /= o.x[o.p[i+1]-1]
		for k := o.p[i]; k < o.p[i+1]-1; k++ {
			z[o.i[k]] -= o.x[k] * z[i]
		}
	}
}

// Jacobi is a diagonal preconditioner; the fallback when the incomplete
// factorisation breaks down
type Jacobi struct {
	d []float64 // inverse of the diagonal
}

// NewJacobi extracts the inverse diagonal of R
func NewJacobi(R *CRMatrix) (M *Jacobi, err error) {
	m, n := R.Dims()
	if m != n {
		return nil, chk.Err("Jacobi needs a square matrix. %d x %d is invalid", m, n)
	}
	M = &Jacobi{d: make([]float64, n)}
	for r := 0; r < n; r++ {
		for k := R.p[r]; k < R.p[r+1]; k++ {
			if R.i[k] == r {
				M.d[r] = R.x[k]
			}
		}
		if M.d[r] == 0 {
			return nil, chk.Err("Jacobi: equation %d has zero diagonal", r)
		}
		M.d[r] = 1.0 / M.d[r]
	}
	return
}

// Apply computes z = D⁻¹ * r
func (o *Jacobi) Apply(z, r []float64) {
	for i := 0; i < len(z); i++ {
		z[i] = o.d[i] * r[i]
	}
}
