// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mice implements material models for ice: Glen's flow law with an
// Arrhenius rate factor, the membrane viscosity tensors of the shallow stream
// balance in 2D Mandel form, and the grounding predicate
package mice

import (
	"math"

	"github.com/cpmech/gosl/fun"
)

// RGAS is the ideal gas constant [J/(mol·K)]
const RGAS = 8.3144621

// Consts holds the physical constants of ice and ocean water (SI units)
type Consts struct {
	RhoI    float64 // ice density [kg/m³]
	RhoW    float64 // seawater density [kg/m³]
	Grav    float64 // acceleration of gravity [m/s²]
	FlotTol float64 // relative tolerance of the flotation predicate
	FlotWid float64 // width of the smooth flotation switch; 0 means hard switch
}

// NewConsts returns constants with default values, overridable via prms:
//  "rhoi", "rhow", "grav", "flottol", "flotwid"
func NewConsts(prms fun.Prms) (o *Consts) {
	o = &Consts{
		RhoI:    917.0,
		RhoW:    1024.0,
		Grav:    9.81,
		FlotTol: 1e-4,
		FlotWid: 0,
	}
	for _, p := range prms {
		switch p.N {
		case "rhoi":
			o.RhoI = p.V
		case "rhow":
			o.RhoW = p.V
		case "grav":
			o.Grav = p.V
		case "flottol":
			o.FlotTol = p.V
		case "flotwid":
			o.FlotWid = p.V
		}
	}
	return
}

// FlotThick returns the flotation thickness h_f = (1 − ρ_ice/ρ_water)·h, the
// surface elevation of ice of thickness h in hydrostatic equilibrium
func (o *Consts) FlotThick(h float64) float64 {
	return (1.0 - o.RhoI/o.RhoW) * h
}

// Floating is the flotation predicate s/h_f − 1 > FlotTol deciding, pointwise,
// where the basal Robin (drag) term applies. The tolerance absorbs
// finite-precision surface noise: ice in exact hydrostatic equilibrium has
// s == h_f and does not trigger the predicate. Non-positive thickness means
// no ice, hence false.
func (o *Consts) Floating(s, h float64) bool {
	if h <= 0 {
		return false
	}
	return s/o.FlotThick(h)-1.0 > o.FlotTol
}

// FloatFrac returns the drag-region indicator as a scalar factor. With zero
// switch width this is the hard predicate (0 or 1); with positive width the
// switch is a sigmoid in s/h_f − 1, smoothing the residual at the grounding
// line
func (o *Consts) FloatFrac(s, h float64) float64 {
	if h <= 0 {
		return 0
	}
	x := s/o.FlotThick(h) - 1.0
	if o.FlotWid > 0 {
		return 1.0 / (1.0 + math.Exp(-(x-o.FlotTol)/o.FlotWid))
	}
	if x > o.FlotTol {
		return 1
	}
	return 0
}
