// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Lin3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of lin3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
func Lin3(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	/*
	   -1     0    +1
	    0-----2-----1-->r
	*/
	S[0] = 0.5 * r[0] * (r[0] - 1.0)
	S[1] = 0.5 * r[0] * (r[0] + 1.0)
	S[2] = 1.0 - r[0]*r[0]

	if !derivs {
		return
	}

	dSdR[0][0] = r[0] - 0.5
	dSdR[1][0] = r[0] + 0.5
	dSdR[2][0] = -2.0 * r[0]
}

func init() {
	shape := &Shape{}
	shape.Type = "lin3"
	shape.Func = Lin3
	shape.BasicType = "lin3"
	shape.Gndim = 1
	shape.Nverts = 3
	shape.VtkCode = 21
	shape.NatCoords = [][]float64{
		{-1, 1, 0},
	}
	shape.init_scratchpad()
	factory["lin3"] = shape
}
