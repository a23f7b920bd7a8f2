// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// Tri3 calculates the shape functions (S) and derivatives of shape functions (dSdR) of tri3
// elements at {r,s,t} natural coordinates. The derivatives are calculated only if derivs==true.
func Tri3(S []float64, dSdR [][]float64, r []float64, derivs bool) {
	/*    s
	      |
	      2, (0,1)
	      | ',
	      |   ',
	      |     ',
	      |       ',
	      0---------1 --> r
	   (0,0)       (1,0)
	*/
	S[0] = 1.0 - r[0] - r[1]
	S[1] = r[0]
	S[2] = r[1]

	if !derivs {
		return
	}

	dSdR[0][0] = -1.0
	dSdR[0][1] = -1.0
	dSdR[1][0] = 1.0
	dSdR[1][1] = 0.0
	dSdR[2][0] = 0.0
	dSdR[2][1] = 1.0
}

func init() {
	shape := &Shape{}
	shape.Type = "tri3"
	shape.Func = Tri3
	shape.FaceFunc = Lin2
	shape.BasicType = "tri3"
	shape.FaceType = "lin2"
	shape.Gndim = 2
	shape.Nverts = 3
	shape.VtkCode = 5
	shape.FaceNvertsMax = 2
	shape.FaceLocalVerts = [][]int{
		{0, 1},
		{1, 2},
		{2, 0},
	}
	shape.NatCoords = [][]float64{
		{0, 1, 0},
		{0, 0, 1},
	}
	shape.init_scratchpad()
	factory["tri3"] = shape
}
