// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Qua4 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua4
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
func Qua4(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	/*        s
	          |
	    3-----------2
	    |     |     |
	    |     |     |
	    |     +---- | --> r
	    |           |
	    |           |
	    0-----------1
	*/
	S[0] = 0.25 * (1.0 - r[0]) * (1.0 - r[1])
	S[1] = 0.25 * (1.0 + r[0]) * (1.0 - r[1])
	S[2] = 0.25 * (1.0 + r[0]) * (1.0 + r[1])
	S[3] = 0.25 * (1.0 - r[0]) * (1.0 + r[1])

	if !derivs {
		return
	}

	dSdR[0][0] = -0.25 * (1.0 - r[1])
	dSdR[0][1] = -0.25 * (1.0 - r[0])
	dSdR[1][0] = 0.25 * (1.0 - r[1])
	dSdR[1][1] = -0.25 * (1.0 + r[0])
	dSdR[2][0] = 0.25 * (1.0 + r[1])
	dSdR[2][1] = 0.25 * (1.0 + r[0])
	dSdR[3][0] = -0.25 * (1.0 + r[1])
	dSdR[3][1] = 0.25 * (1.0 - r[0])
}

func init() {
	shape := &Shape{}
	shape.Type = "qua4"
	shape.Func = Qua4
	shape.FaceFunc = Lin2
	shape.BasicType = "qua4"
	shape.FaceType = "lin2"
	shape.Gndim = 2
	shape.Nverts = 4
	shape.VtkCode = 9
	shape.FaceNvertsMax = 2
	shape.FaceLocalVerts = [][]int{
		{0, 1},
		{1, 2},
		{2, 3},
		{3, 0},
	}
	shape.NatCoords = [][]float64{
		{-1, 1, 1, -1},
		{-1, -1, 1, 1},
	}
	shape.init_scratchpad()
	factory["qua4"] = shape
}
