// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparse

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// tridiag builds the n x n matrix with 2 on the diagonal and -1 off-diagonal
func tridiag(n int) *CRMatrix {
	var T Triplet
	T.Init(n, n, 3*n)
	for i := 0; i < n; i++ {
		T.Put(i, i, 2)
		if i > 0 {
			T.Put(i, i-1, -1)
		}
		if i < n-1 {
			T.Put(i, i+1, -1)
		}
	}
	return T.ToMatrix()
}

// laplacian2d builds the 5-point stencil matrix on an nx x ny grid
func laplacian2d(nx, ny int) *CRMatrix {
	n := nx * ny
	var T Triplet
	T.Init(n, n, 5*n)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			r := j*nx + i
			T.Put(r, r, 4)
			if i > 0 {
				T.Put(r, r-1, -1)
			}
			if i < nx-1 {
				T.Put(r, r+1, -1)
			}
			if j > 0 {
				T.Put(r, r-nx, -1)
			}
			if j < ny-1 {
				T.Put(r, r+nx, -1)
			}
		}
	}
	return T.ToMatrix()
}

func Test_triplet01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("triplet01. triplet to compressed-row conversion")

	// assemble with a repeated entry and out-of-order columns
	var T Triplet
	T.Init(3, 3, 10)
	T.Put(0, 0, 1)
	T.Put(0, 0, 0.5)
	T.Put(0, 1, 2)
	T.Put(1, 1, 4)
	T.Put(1, 2, 3)
	T.Put(2, 2, 6)
	T.Put(2, 1, 3)
	if T.Len() != 7 || T.Max() != 10 {
		tst.Errorf("wrong triplet sizes: len=%d max=%d", T.Len(), T.Max())
		return
	}

	A := T.ToMatrix()
	if A.Nnz() != 6 {
		tst.Errorf("repeated entry must be summed: nnz=%d", A.Nnz())
		return
	}
	chk.Matrix(tst, "A", 1e-17, A.ToDense(), [][]float64{
		{1.5, 2, 0},
		{0, 4, 3},
		{0, 3, 6},
	})

	// matrix-vector products
	x := []float64{1, 2, 3}
	y := make([]float64, 3)
	A.MatVecMul(y, x)
	chk.Vector(tst, "A*x", 1e-15, y, []float64{5.5, 17, 24})
	A.MatVecMulAdd(y, 2, x)
	chk.Vector(tst, "y+2*A*x", 1e-15, y, []float64{16.5, 51, 72})

	// reassembly with the same storage
	T.Start()
	T.Put(0, 0, 2)
	T.Put(1, 1, 2)
	T.Put(2, 2, 2)
	B := T.ToMatrix()
	chk.Matrix(tst, "B", 1e-17, B.ToDense(), [][]float64{
		{2, 0, 0},
		{0, 2, 0},
		{0, 0, 2},
	})
}

func Test_dirichlet01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dirichlet01. symmetric elimination of prescribed equations")

	A := tridiag(4)
	b := []float64{1, 1, 1, 1}
	pres := []bool{true, false, false, true}
	vals := []float64{0, 0, 0, 2}
	err := A.SetDirichlet(pres, b, vals)
	if err != nil {
		tst.Errorf("SetDirichlet failed:\n%v", err)
		return
	}
	chk.Matrix(tst, "A modified", 1e-17, A.ToDense(), [][]float64{
		{1, 0, 0, 0},
		{0, 2, -1, 0},
		{0, -1, 2, 0},
		{0, 0, 0, 1},
	})
	chk.Vector(tst, "b modified", 1e-17, b, []float64{0, 1, 3, 2})

	// the eliminated system remains positive definite and solvable
	M, err := NewIC0(A)
	if err != nil {
		tst.Errorf("NewIC0 failed:\n%v", err)
		return
	}
	u := make([]float64, 4)
	nit, err := PCG(A, M, u, b, 1e-12, 100)
	if err != nil {
		tst.Errorf("PCG failed:\n%v", err)
		return
	}
	io.Pfyel("nit = %d\n", nit)
	chk.Vector(tst, "u", 1e-10, u, []float64{0, 5.0 / 3.0, 7.0 / 3.0, 2})
}

func Test_ic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ic01. incomplete Cholesky on a tridiagonal matrix")

	// for a tridiagonal matrix the zero fill-in factorisation is exact,
	// hence Apply must invert the matrix and the solver needs one iteration
	n := 8
	A := tridiag(n)
	M, err := NewIC0(A)
	if err != nil {
		tst.Errorf("NewIC0 failed:\n%v", err)
		return
	}

	xref := make([]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		xref[i] = float64(i + 1)
	}
	A.MatVecMul(b, xref)

	z := make([]float64, n)
	M.Apply(z, b)
	chk.Vector(tst, "M⁻¹*A*x", 1e-12, z, xref)

	u := make([]float64, n)
	nit, err := PCG(A, M, u, b, 1e-12, 100)
	if err != nil {
		tst.Errorf("PCG failed:\n%v", err)
		return
	}
	io.Pfyel("nit = %d\n", nit)
	if nit > 2 {
		tst.Errorf("exact preconditioner must converge immediately: nit=%d", nit)
	}
	chk.Vector(tst, "u", 1e-10, u, xref)
}

func Test_pcg01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pcg01. conjugate gradients on a 2D Laplacian")

	nx, ny := 10, 10
	n := nx * ny
	A := laplacian2d(nx, ny)
	xref := make([]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		xref[i] = math.Sin(0.1 * float64(i+1))
	}
	A.MatVecMul(b, xref)

	// incomplete Cholesky
	M, err := NewIC0(A)
	if err != nil {
		tst.Errorf("NewIC0 failed:\n%v", err)
		return
	}
	u := make([]float64, n)
	nit, err := PCG(A, M, u, b, 1e-12, 500)
	if err != nil {
		tst.Errorf("PCG/IC0 failed:\n%v", err)
		return
	}
	io.Pfyel("IC0:    nit = %d\n", nit)
	icnit := nit
	diff := make([]float64, n)
	for i := 0; i < n; i++ {
		diff[i] = u[i] - xref[i]
	}
	chk.Scalar(tst, "IC0: ‖u-xref‖", 1e-9, la.VecNorm(diff), 0)

	// Jacobi
	J, err := NewJacobi(A)
	if err != nil {
		tst.Errorf("NewJacobi failed:\n%v", err)
		return
	}
	la.VecFill(u, 0)
	nit, err = PCG(A, J, u, b, 1e-12, 500)
	if err != nil {
		tst.Errorf("PCG/Jacobi failed:\n%v", err)
		return
	}
	io.Pfyel("Jacobi: nit = %d\n", nit)
	if nit <= icnit {
		tst.Errorf("incomplete Cholesky must need fewer iterations than the diagonal: %d >= %d", icnit, nit)
	}
	for i := 0; i < n; i++ {
		diff[i] = u[i] - xref[i]
	}
	chk.Scalar(tst, "Jacobi: ‖u-xref‖", 1e-9, la.VecNorm(diff), 0)

	// no preconditioner
	la.VecFill(u, 0)
	nit, err = PCG(A, nil, u, b, 1e-12, 500)
	if err != nil {
		tst.Errorf("PCG failed:\n%v", err)
		return
	}
	io.Pfyel("plain:  nit = %d\n", nit)
	for i := 0; i < n; i++ {
		diff[i] = u[i] - xref[i]
	}
	chk.Scalar(tst, "plain: ‖u-xref‖", 1e-9, la.VecNorm(diff), 0)

	// zero right-hand side converges immediately
	la.VecFill(u, 0)
	zero := make([]float64, n)
	nit, err = PCG(A, M, u, zero, 1e-12, 500)
	if err != nil || nit != 0 {
		tst.Errorf("zero right-hand side must converge immediately: nit=%d err=%v", nit, err)
	}

	// iteration cap must be reported
	la.VecFill(u, 0)
	_, err = PCG(A, nil, u, b, 1e-12, 2)
	if err == nil {
		tst.Errorf("non-convergence within itmax must be reported")
	}
}

func Test_pcg02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pcg02. breakdown on an indefinite matrix")

	n := 5
	var T Triplet
	T.Init(n, n, n)
	for i := 0; i < n; i++ {
		T.Put(i, i, -1)
	}
	A := T.ToMatrix()
	b := []float64{1, 1, 1, 1, 1}

	u := make([]float64, n)
	if _, err := PCG(A, nil, u, b, 1e-12, 100); err == nil {
		tst.Errorf("breakdown on a negative-definite matrix must be reported")
	}

	if _, err := NewIC0(A); err == nil {
		tst.Errorf("incomplete factorisation of a negative-definite matrix must fail")
	}

	// the diagonal fallback still applies
	J, err := NewJacobi(A)
	if err != nil {
		tst.Errorf("NewJacobi failed:\n%v", err)
		return
	}
	z := make([]float64, n)
	J.Apply(z, b)
	chk.Vector(tst, "z", 1e-17, z, []float64{-1, -1, -1, -1, -1})
}
