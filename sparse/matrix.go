// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sparse implements a compressed-row matrix, a triplet assembly container
// and a preconditioned conjugate-gradient solver for symmetric systems
package sparse

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Triplet holds matrix entries in coordinate format during assembly. Repeated
// (i,j) pairs are allowed and are summed by ToMatrix.
type Triplet struct {
	m, n     int       // dimensions
	pos, max int       // current position and capacity
	i, j     []int     // indices
	x        []float64 // values
}

// Init allocates the triplet with space for max entries
func (o *Triplet) Init(m, n, max int) {
	o.m, o.n, o.pos, o.max = m, n, 0, max
	o.i = make([]int, max)
	o.j = make([]int, max)
	o.x = make([]float64, max)
}

// Put inserts a new entry
func (o *Triplet) Put(i, j int, x float64) {
	if o.pos >= o.max {
		chk.Panic("cannot put entry because the maximum number of entries was reached (pos=%d, max=%d)", o.pos, o.max)
	}
	o.i[o.pos], o.j[o.pos], o.x[o.pos] = i, j, x
	o.pos++
}

// Start resets the position, allowing the triplet to be refilled for reassembly
func (o *Triplet) Start() {
	o.pos = 0
}

// Len returns the number of entries currently stored
func (o *Triplet) Len() int {
	return o.pos
}

// Max returns the capacity
func (o *Triplet) Max() int {
	return o.max
}

// CRMatrix holds a sparse matrix in compressed-row format. Within each row the
// column indices are unique and sorted in ascending order.
type CRMatrix struct {
	m, n int       // dimensions
	p    []int     // row pointers (len==m+1)
	i    []int     // column indices (len==nnz)
	x    []float64 // values (len==nnz)
}

// ToMatrix converts the triplet to compressed-row format, summing repeated
// entries and sorting the columns within each row
func (o *Triplet) ToMatrix() (R *CRMatrix) {

	// count entries per row, with repetitions
	R = new(CRMatrix)
	R.m, R.n = o.m, o.n
	R.p = make([]int, o.m+1)
	for k := 0; k < o.pos; k++ {
		R.p[o.i[k]+1]++
	}
	for r := 0; r < o.m; r++ {
		R.p[r+1] += R.p[r]
	}

	// scatter values into rows
	R.i = make([]int, o.pos)
	R.x = make([]float64, o.pos)
	count := make([]int, o.m)
	for k := 0; k < o.pos; k++ {
		r := o.i[k]
		dest := R.p[r] + count[r]
		R.i[dest] = o.j[k]
		R.x[dest] = o.x[k]
		count[r]++
	}

	// sum repeated columns, compacting rows in place. w maps a column to the
	// destination of its first occurrence; positions before the row start
	// belong to previous rows and mark the column as unseen.
	w := make([]int, o.n)
	for c := range w {
		w[c] = -1
	}
	nz, k0 := 0, 0
	for r := 0; r < o.m; r++ {
		k1 := R.p[r+1]
		start := nz
		for k := k0; k < k1; k++ {
			c := R.i[k]
			if w[c] >= start {
				R.x[w[c]] += R.x[k]
			} else {
				w[c] = nz
				R.i[nz] = c
				R.x[nz] = R.x[k]
				nz++
			}
		}
		k0 = k1
		R.p[r+1] = nz
	}
	R.i = R.i[:nz]
	R.x = R.x[:nz]

	// sort columns within each row (rows are short; insertion sort)
	for r := 0; r < o.m; r++ {
		for a := R.p[r] + 1; a < R.p[r+1]; a++ {
			c, v := R.i[a], R.x[a]
			b := a - 1
			for b >= R.p[r] && R.i[b] > c {
				R.i[b+1], R.x[b+1] = R.i[b], R.x[b]
				b--
			}
			R.i[b+1], R.x[b+1] = c, v
		}
	}
	return
}

// Dims returns the number of rows and columns
func (o *CRMatrix) Dims() (m, n int) {
	return o.m, o.n
}

// Nnz returns the number of stored entries
func (o *CRMatrix) Nnz() int {
	return len(o.x)
}

// MatVecMul computes y := R * x
func (o *CRMatrix) MatVecMul(y, x []float64) {
	for r := 0; r < o.m; r++ {
		y[r] = 0
		for k := o.p[r]; k < o.p[r+1]; k++ {
			y[r] += o.x[k] * x[o.i[k]]
		}
	}
}

// MatVecMulAdd computes y += a * R * x
func (o *CRMatrix) MatVecMulAdd(y []float64, a float64, x []float64) {
	for r := 0; r < o.m; r++ {
		for k := o.p[r]; k < o.p[r+1]; k++ {
			y[r] += a * o.x[k] * x[o.i[k]]
		}
	}
}

// ToDense returns the dense representation of this matrix
func (o *CRMatrix) ToDense() (res [][]float64) {
	res = la.MatAlloc(o.m, o.n)
	for r := 0; r < o.m; r++ {
		for k := o.p[r]; k < o.p[r+1]; k++ {
			res[r][o.i[k]] = o.x[k]
		}
	}
	return
}

// SetDirichlet applies prescribed values to the square system R*u = b by
// symmetric elimination: known terms are moved to the right-hand side,
// prescribed rows and columns are zeroed keeping the sparsity pattern, unit
// values are placed on the diagonal and b is set to the prescribed values.
// A nil vals slice means all prescribed values are zero.
func (o *CRMatrix) SetDirichlet(pres []bool, b, vals []float64) (err error) {
	if o.m != o.n || len(pres) != o.m || len(b) != o.m {
		return chk.Err("SetDirichlet needs a square system. m=%d n=%d len(pres)=%d len(b)=%d is invalid", o.m, o.n, len(pres), len(b))
	}
	val := func(c int) float64 {
		if vals == nil {
			return 0
		}
		return vals[c]
	}
	for r := 0; r < o.m; r++ {
		if pres[r] {
			hasdiag := false
			for k := o.p[r]; k < o.p[r+1]; k++ {
				if o.i[k] == r {
					o.x[k] = 1
					hasdiag = true
				} else {
					o.x[k] = 0
				}
			}
			if !hasdiag {
				return chk.Err("prescribed equation %d has no diagonal entry in the sparsity pattern", r)
			}
			b[r] = val(r)
			continue
		}
		for k := o.p[r]; k < o.p[r+1]; k++ {
			if c := o.i[k]; pres[c] {
				b[r] -= o.x[k] * val(c)
				o.x[k] = 0
			}
		}
	}
	return
}
