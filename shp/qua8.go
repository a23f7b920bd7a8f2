// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Qua8 calculates the shape functions (S) and derivatives of shape functions (dSdR) of qua8
// (serendipity) elements at {r,s,t} natural coordinates. The derivatives are calculated
// only if derivs==true.
func Qua8(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	/*        s
	          |
	    3-----6-----2
	    |     |     |
	    |     |     |
	    7     +---- 5 --> r
	    |           |
	    |           |
	    0-----4-----1
	*/
	S[0] = 0.25 * (1.0 - r[0]) * (1.0 - r[1]) * (-r[0] - r[1] - 1.0)
	S[1] = 0.25 * (1.0 + r[0]) * (1.0 - r[1]) * (r[0] - r[1] - 1.0)
	S[2] = 0.25 * (1.0 + r[0]) * (1.0 + r[1]) * (r[0] + r[1] - 1.0)
	S[3] = 0.25 * (1.0 - r[0]) * (1.0 + r[1]) * (-r[0] + r[1] - 1.0)
	S[4] = 0.5 * (1.0 - r[0]*r[0]) * (1.0 - r[1])
	S[5] = 0.5 * (1.0 + r[0]) * (1.0 - r[1]*r[1])
	S[6] = 0.5 * (1.0 - r[0]*r[0]) * (1.0 + r[1])
	S[7] = 0.5 * (1.0 - r[0]) * (1.0 - r[1]*r[1])

	if !derivs {
		return
	}

	dSdR[0][0] = -0.25 * (1.0 - r[1]) * (-2.0*r[0] - r[1])
	dSdR[0][1] = -0.25 * (1.0 - r[0]) * (-r[0] - 2.0*r[1])
	dSdR[1][0] = 0.25 * (1.0 - r[1]) * (2.0*r[0] - r[1])
	dSdR[1][1] = -0.25 * (1.0 + r[0]) * (r[0] - 2.0*r[1])
	dSdR[2][0] = 0.25 * (1.0 + r[1]) * (2.0*r[0] + r[1])
	dSdR[2][1] = 0.25 * (1.0 + r[0]) * (r[0] + 2.0*r[1])
	dSdR[3][0] = -0.25 * (1.0 + r[1]) * (-2.0*r[0] + r[1])
	dSdR[3][1] = 0.25 * (1.0 - r[0]) * (-r[0] + 2.0*r[1])
	dSdR[4][0] = -r[0] * (1.0 - r[1])
	dSdR[4][1] = -0.5 * (1.0 - r[0]*r[0])
	dSdR[5][0] = 0.5 * (1.0 - r[1]*r[1])
	dSdR[5][1] = -(1.0 + r[0]) * r[1]
	dSdR[6][0] = -r[0] * (1.0 + r[1])
	dSdR[6][1] = 0.5 * (1.0 - r[0]*r[0])
	dSdR[7][0] = -0.5 * (1.0 - r[1]*r[1])
	dSdR[7][1] = -(1.0 - r[0]) * r[1]
}

func init() {
	shape := &Shape{}
	shape.Type = "qua8"
	shape.Func = Qua8
	shape.FaceFunc = Lin3
	shape.BasicType = "qua4"
	shape.FaceType = "lin3"
	shape.Gndim = 2
	shape.Nverts = 8
	shape.VtkCode = 23
	shape.FaceNvertsMax = 3
	shape.FaceLocalVerts = [][]int{
		{0, 1, 4},
		{1, 2, 5},
		{2, 3, 6},
		{3, 0, 7},
	}
	shape.NatCoords = [][]float64{
		{-1, 1, 1, -1, 0, 1, 0, -1},
		{-1, -1, 1, 1, -1, 0, 1, 0},
	}
	shape.init_scratchpad()
	factory["qua8"] = shape
}
