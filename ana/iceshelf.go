// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions for checking the shallow
// stream solver
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// yearSec is the number of seconds per Julian year
const yearSec = 31557600.0

// IceShelf implements the spreading of an unconfined floating shelf of
// uniform thickness, fed at x=0 with velocity u0. Balancing the membrane
// stress against the hydrostatic front traction gives the uniform strain rate
//
//   k = A·(ρ_ice·g·H·(1 − ρ_ice/ρ_water)/4)³,   u(x) = u0 + k·x
//
// for flow-law exponent n = 3
type IceShelf struct {

	// input
	u0   float64 // inflow velocity [m/s]
	H    float64 // uniform thickness [m]
	A    float64 // flow-rate factor [1/(Pa³·s)]
	rhoi float64 // ice density [kg/m³]
	rhow float64 // seawater density [kg/m³]
	grav float64 // gravity [m/s²]
}

// Init initialises this structure. The default rate factor is the warm
// branch of the Paterson–Budd relation at 263.15 K.
func (o *IceShelf) Init(prms fun.Prms) {

	// default values
	o.u0 = 100.0 / yearSec
	o.H = 500.0
	o.A = 1.916e3 * math.Exp(-139.0e3/(8.3144621*263.15))
	o.rhoi = 917.0
	o.rhow = 1024.0
	o.grav = 9.81

	// parameters
	for _, p := range prms {
		switch p.N {
		case "u0":
			o.u0 = p.V
		case "H":
			o.H = p.V
		case "A":
			o.A = p.V
		case "rhoi":
			o.rhoi = p.V
		case "rhow":
			o.rhow = p.V
		case "grav":
			o.grav = p.V
		}
	}
}

// StrainRate returns the uniform spreading rate k [1/s]
func (o *IceShelf) StrainRate() float64 {
	t := o.rhoi * o.grav * o.H * (1.0 - o.rhoi/o.rhow) / 4.0
	return o.A * t * t * t
}

// Surface returns the surface elevation of the shelf in hydrostatic
// equilibrium [m]
func (o *IceShelf) Surface() float64 {
	return (1.0 - o.rhoi/o.rhow) * o.H
}

// Velocity returns the along-flow velocity @ x [m/s]
func (o *IceShelf) Velocity(x float64) float64 {
	return o.u0 + o.StrainRate()*x
}

// CompareVel compares a computed velocity pair against the solution @ x
//  Output:
//   e -- absolute error of each component
func (o *IceShelf) CompareVel(x []float64, ux, uy float64, tol float64, verbose bool) (e []float64) {
	ax := o.Velocity(x[0])
	if verbose {
		chk.PrintAnaNum("ux", tol, ax, ux, verbose)
		chk.PrintAnaNum("uy", tol, 0, uy, verbose)
	}
	e = []float64{
		math.Abs(ax - ux),
		math.Abs(uy),
	}
	return
}

// PlotVelocity plots the velocity profile along the flow direction, in
// metres per year
func (o *IceShelf) PlotVelocity(L float64, npts int) {
	X := utl.LinSpace(0, L, npts)
	U := make([]float64, npts)
	for i := 0; i < npts; i++ {
		U[i] = o.Velocity(X[i]) * yearSec
	}
	plt.Plot(X, U, "color='b',label='$u_x$'")
	plt.Gll("$x$ [m]", "velocity [m/yr]", "")
}
