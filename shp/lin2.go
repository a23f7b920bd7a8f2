// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Lin2 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin2
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
func Lin2(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	/*
	   -1     0    +1
	    0-----------1-->r
	*/
	S[0] = 0.5 * (1.0 - r[0])
	S[1] = 0.5 * (1.0 + r[0])

	if !derivs {
		return
	}

	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

func init() {
	shape := &Shape{}
	shape.Type = "lin2"
	shape.Func = Lin2
	shape.BasicType = "lin2"
	shape.Gndim = 1
	shape.Nverts = 2
	shape.VtkCode = 3
	shape.NatCoords = [][]float64{
		{-1, 1},
	}
	shape.init_scratchpad()
	factory["lin2"] = shape
}
