// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msh

import (
	"github.com/cpmech/gosl/chk"
)

// edge tags assigned by GenRect
const (
	TagLeft   = -10 // x = 0 edge
	TagRight  = -11 // x = lx edge
	TagBottom = -20 // y = 0 edge
	TagTop    = -21 // y = ly edge
)

// GenRect generates a structured mesh over the rectangle [0,lx] x [0,ly]
//  Input:
//   ctype       -- cell type: "tri3", "tri6", "qua4" or "qua8"
//   lx, ly      -- rectangle dimensions
//   nx, ny      -- number of cells along x and y
//   goroutineId -- goroutine id for shape allocation (0 for the shared structures)
//  Output:
//   mesh with cell tag -1 and edge tags TagLeft, TagRight, TagBottom, TagTop
func GenRect(ctype string, lx, ly float64, nx, ny int, goroutineId int) (*Mesh, error) {

	// check
	if lx <= 0 || ly <= 0 {
		return nil, chk.Err("rectangle dimensions are invalid: lx=%g ly=%g", lx, ly)
	}
	if nx < 1 || ny < 1 {
		return nil, chk.Err("number of divisions is invalid: nx=%d ny=%d", nx, ny)
	}

	var o Mesh
	switch ctype {
	case "qua4", "tri3":
		o.genLinear(ctype, lx, ly, nx, ny)
	case "qua8", "tri6":
		o.genQuadratic(ctype, lx, ly, nx, ny)
	default:
		return nil, chk.Err("cell type %q is not available in GenRect", ctype)
	}

	// derived data
	err := o.Init(goroutineId)
	if err != nil {
		return nil, chk.Err("generated mesh is invalid:\n%v", err)
	}
	return &o, nil
}

// genLinear builds qua4 or tri3 cells on the coarse grid
func (o *Mesh) genLinear(ctype string, lx, ly float64, nx, ny int) {

	// vertices
	nvx, nvy := nx+1, ny+1
	dx, dy := lx/float64(nx), ly/float64(ny)
	o.Verts = make([]*Vert, nvx*nvy)
	for j := 0; j < nvy; j++ {
		for i := 0; i < nvx; i++ {
			id := j*nvx + i
			o.Verts[id] = &Vert{Id: id, C: []float64{float64(i) * dx, float64(j) * dy}}
		}
	}

	// edge tag helpers
	bot := func(j int) int {
		if j == 0 {
			return TagBottom
		}
		return 0
	}
	top := func(j int) int {
		if j == ny-1 {
			return TagTop
		}
		return 0
	}
	left := func(i int) int {
		if i == 0 {
			return TagLeft
		}
		return 0
	}
	right := func(i int) int {
		if i == nx-1 {
			return TagRight
		}
		return 0
	}

	// cells
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n0 := j*nvx + i
			n1 := j*nvx + i + 1
			n2 := (j+1)*nvx + i + 1
			n3 := (j+1)*nvx + i
			if ctype == "qua4" {
				id := len(o.Cells)
				o.Cells = append(o.Cells, &Cell{
					Id: id, Tag: -1, Type: "qua4",
					Verts: []int{n0, n1, n2, n3},
					FTags: []int{bot(j), right(i), top(j), left(i)},
				})
				continue
			}
			ida := len(o.Cells)
			o.Cells = append(o.Cells, &Cell{
				Id: ida, Tag: -1, Type: "tri3",
				Verts: []int{n0, n1, n2},
				FTags: []int{bot(j), right(i), 0},
			})
			idb := len(o.Cells)
			o.Cells = append(o.Cells, &Cell{
				Id: idb, Tag: -1, Type: "tri3",
				Verts: []int{n0, n2, n3},
				FTags: []int{0, top(j), left(i)},
			})
		}
	}
}

// genQuadratic builds qua8 or tri6 cells on the refined grid. qua8 cells skip the
// cell-centre points (serendipity); tri6 cells use them as diagonal midside nodes.
func (o *Mesh) genQuadratic(ctype string, lx, ly float64, nx, ny int) {

	// vertices on the fine grid; ids[j][i] < 0 marks unused points
	nfx, nfy := 2*nx+1, 2*ny+1
	dx, dy := lx/float64(2*nx), ly/float64(2*ny)
	ids := make([][]int, nfy)
	for j := 0; j < nfy; j++ {
		ids[j] = make([]int, nfx)
		for i := 0; i < nfx; i++ {
			if ctype == "qua8" && i%2 == 1 && j%2 == 1 {
				ids[j][i] = -1
				continue
			}
			id := len(o.Verts)
			ids[j][i] = id
			o.Verts = append(o.Verts, &Vert{Id: id, C: []float64{float64(i) * dx, float64(j) * dy}})
		}
	}

	// edge tag helpers
	bot := func(j int) int {
		if j == 0 {
			return TagBottom
		}
		return 0
	}
	top := func(j int) int {
		if j == ny-1 {
			return TagTop
		}
		return 0
	}
	left := func(i int) int {
		if i == 0 {
			return TagLeft
		}
		return 0
	}
	right := func(i int) int {
		if i == nx-1 {
			return TagRight
		}
		return 0
	}

	// cells
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a, b := 2*i, 2*j
			if ctype == "qua8" {
				id := len(o.Cells)
				o.Cells = append(o.Cells, &Cell{
					Id: id, Tag: -1, Type: "qua8",
					Verts: []int{
						ids[b][a], ids[b][a+2], ids[b+2][a+2], ids[b+2][a],
						ids[b][a+1], ids[b+1][a+2], ids[b+2][a+1], ids[b+1][a],
					},
					FTags: []int{bot(j), right(i), top(j), left(i)},
				})
				continue
			}
			ida := len(o.Cells)
			o.Cells = append(o.Cells, &Cell{
				Id: ida, Tag: -1, Type: "tri6",
				Verts: []int{
					ids[b][a], ids[b][a+2], ids[b+2][a+2],
					ids[b][a+1], ids[b+1][a+2], ids[b+1][a+1],
				},
				FTags: []int{bot(j), right(i), 0},
			})
			idb := len(o.Cells)
			o.Cells = append(o.Cells, &Cell{
				Id: idb, Tag: -1, Type: "tri6",
				Verts: []int{
					ids[b][a], ids[b+2][a+2], ids[b+2][a],
					ids[b+1][a+1], ids[b+2][a+1], ids[b+1][a],
				},
				FTags: []int{0, top(j), left(i)},
			})
		}
	}
}
