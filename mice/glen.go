// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mice

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// C0 is the kinematic coupling tensor 𝕀 + I⊗I of the shallow stream balance
// in 2D Mandel representation, acting on strain vectors {εxx, εyy, √2·εxy}
var C0 = [][]float64{
	{2, 1, 0},
	{1, 2, 0},
	{0, 0, 1},
}

// EffStrainRate returns the effective strain rate √((ε:ε + tr(ε)²)/2) of the
// Mandel strain-rate vector {εxx, εyy, √2·εxy}
func EffStrainRate(ε []float64) float64 {
	tr := ε[0] + ε[1]
	return math.Sqrt((ε[0]*ε[0] + ε[1]*ε[1] + ε[2]*ε[2] + tr*tr) / 2.0)
}

// Glen implements Glen's flow law for ice. The effective viscosity is
//  ν(T, εe) = ½·A(T)^(−1/n)·εe^((1−n)/n)
// where A is the flow-rate factor given by a piecewise Arrhenius relation with
// a break at Tbreak (Paterson–Budd coefficients by default)
type Glen struct {

	// parameters
	N      float64 // flow-law exponent
	EpsMin float64 // regularization floor for the effective strain rate [1/s]
	A0cold float64 // prefactor below the Arrhenius break [1/(Pa³·s)]
	Qcold  float64 // activation energy below the break [J/mol]
	A0warm float64 // prefactor above the Arrhenius break [1/(Pa³·s)]
	Qwarm  float64 // activation energy above the break [J/mol]
	Tbreak float64 // temperature of the Arrhenius break [K]

	// auxiliary
	γ []float64 // gradient direction of εe, in Mandel form
}

// Init initialises the model with default Paterson–Budd parameters,
// overridable via prms: "n", "epsmin", "A0c", "Qc", "A0w", "Qw", "Tbrk"
func (o *Glen) Init(prms fun.Prms) (err error) {

	// default parameters
	o.N = 3.0
	o.EpsMin = 1e-15
	o.A0cold = 3.985e-13
	o.Qcold = 60.0e3
	o.A0warm = 1.916e3
	o.Qwarm = 139.0e3
	o.Tbreak = 263.15

	// read parameters
	for _, p := range prms {
		switch p.N {
		case "n":
			o.N = p.V
		case "epsmin":
			o.EpsMin = p.V
		case "A0c":
			o.A0cold = p.V
		case "Qc":
			o.Qcold = p.V
		case "A0w":
			o.A0warm = p.V
		case "Qw":
			o.Qwarm = p.V
		case "Tbrk":
			o.Tbreak = p.V
		}
	}

	// check
	if o.N <= 1 {
		return chk.Err("flow-law exponent must be greater than one. n=%g is invalid", o.N)
	}
	if o.EpsMin <= 0 {
		return chk.Err("strain-rate floor must be positive. epsmin=%g is invalid", o.EpsMin)
	}

	// auxiliary
	o.γ = make([]float64, 3)
	return
}

// GetPrms gets (an example) of parameters
func (o Glen) GetPrms() fun.Prms {
	return []*fun.Prm{
		&fun.Prm{N: "n", V: 3.0},
		&fun.Prm{N: "epsmin", V: 1e-15},
		&fun.Prm{N: "A0c", V: 3.985e-13},
		&fun.Prm{N: "Qc", V: 60.0e3},
		&fun.Prm{N: "A0w", V: 1.916e3},
		&fun.Prm{N: "Qw", V: 139.0e3},
		&fun.Prm{N: "Tbrk", V: 263.15},
	}
}

// RateFactor returns the Arrhenius flow-rate factor A(T) for the absolute
// temperature T [K]
func (o *Glen) RateFactor(T float64) float64 {
	if T < o.Tbreak {
		return o.A0cold * math.Exp(-o.Qcold/(RGAS*T))
	}
	return o.A0warm * math.Exp(-o.Qwarm/(RGAS*T))
}

// Viscosity returns the effective viscosity for temperature T [K] and
// effective strain rate εe [1/s]. Below the floor EpsMin the strain rate is
// clamped, capping the viscosity.
func (o *Glen) Viscosity(T, εe float64) float64 {
	if εe < o.EpsMin {
		εe = o.EpsMin
	}
	return 0.5 * math.Pow(o.RateFactor(T), -1.0/o.N) * math.Pow(εe, (1.0-o.N)/o.N)
}

// CalcD fills the 3x3 Mandel viscosity tensor used in the momentum operator:
//  D = 2·H·ν(T, εe)·𝐂₀
//  Input:
//   T -- temperature [K]
//   H -- ice thickness [m]
//   ε -- Mandel strain-rate vector {εxx, εyy, √2·εxy}
func (o *Glen) CalcD(D [][]float64, T, H float64, ε []float64) (err error) {
	if H <= 0 {
		return chk.Err("ice thickness must be positive. H=%g is invalid", H)
	}
	c := 2.0 * H * o.Viscosity(T, EffStrainRate(ε))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = c * C0[i][j]
		}
	}
	return
}

// CalcDlin fills the consistent tangent of the stress map ε ↦ 2Hν(εe)·𝐂₀:ε:
//  D = 2·H·ν·(𝐂₀ − (n−1)/(2n)·γ⊗γ),  γ = (ε + tr(ε)·I)/εe
// For n=3 the rank-one term is γ⊗γ/3, the shear-thinning feedback. At the
// regularization floor the viscosity is constant, the γ term vanishes and the
// tangent coincides with CalcD.
func (o *Glen) CalcDlin(D [][]float64, T, H float64, ε []float64) (err error) {
	if H <= 0 {
		return chk.Err("ice thickness must be positive. H=%g is invalid", H)
	}
	εe := EffStrainRate(ε)
	c := 2.0 * H * o.Viscosity(T, εe)
	if εe < o.EpsMin {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				D[i][j] = c * C0[i][j]
			}
		}
		return
	}
	tr := ε[0] + ε[1]
	o.γ[0] = (ε[0] + tr) / εe
	o.γ[1] = (ε[1] + tr) / εe
	o.γ[2] = ε[2] / εe
	m := (o.N - 1.0) / (2.0 * o.N)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			D[i][j] = c * (C0[i][j] - m*o.γ[i]*o.γ[j])
		}
	}
	return
}
