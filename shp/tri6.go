// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Tri6 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri6
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
func Tri6(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	/*    s
	      |
	      2, (0,1)
	      | ',
	      |   ',
	      5     4
	      |       ',
	      0----3----1 --> r
	   (0,0)       (1,0)
	*/
	z0 := 1.0 - r[0] - r[1]
	z1 := r[0]
	z2 := r[1]
	S[0] = z0 * (2.0*z0 - 1.0)
	S[1] = z1 * (2.0*z1 - 1.0)
	S[2] = z2 * (2.0*z2 - 1.0)
	S[3] = 4.0 * z0 * z1
	S[4] = 4.0 * z1 * z2
	S[5] = 4.0 * z2 * z0

	if !derivs {
		return
	}

	dSdR[0][0] = -(4.0*z0 - 1.0)
	dSdR[0][1] = -(4.0*z0 - 1.0)
	dSdR[1][0] = 4.0*z1 - 1.0
	dSdR[1][1] = 0.0
	dSdR[2][0] = 0.0
	dSdR[2][1] = 4.0*z2 - 1.0
	dSdR[3][0] = 4.0 * (z0 - z1)
	dSdR[3][1] = -4.0 * z1
	dSdR[4][0] = 4.0 * z2
	dSdR[4][1] = 4.0 * z1
	dSdR[5][0] = -4.0 * z2
	dSdR[5][1] = 4.0 * (z0 - z2)
}

func init() {
	shape := &Shape{}
	shape.Type = "tri6"
	shape.Func = Tri6
	shape.FaceFunc = Lin3
	shape.BasicType = "tri3"
	shape.FaceType = "lin3"
	shape.Gndim = 2
	shape.Nverts = 6
	shape.VtkCode = 22
	shape.FaceNvertsMax = 3
	shape.FaceLocalVerts = [][]int{
		{0, 1, 3},
		{1, 2, 4},
		{2, 0, 5},
	}
	shape.NatCoords = [][]float64{
		{0, 1, 0, 0.5, 0.5, 0},
		{0, 0, 1, 0, 0.5, 0.5},
	}
	shape.init_scratchpad()
	factory["tri6"] = shape
}
