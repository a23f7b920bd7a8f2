// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msh implements the mesh data model: vertices, cells, boundary tags and
// a reader/generator for two-dimensional triangulations
package msh

import (
	"encoding/json"
	"path/filepath"

	"github.com/benhills/icepack/shp"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==2)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type (string)
	Verts []int  // vertices
	FTags []int  // edge tags; one per face, 0 means untagged

	// derived
	Shp *shp.Shape // shape structure
}

// CellFaceId holds a reference to one face of one cell
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	FnamePath  string  // complete filename path (if read from a file)
	Ndim       int     // space dimension
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert      // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell      // cell tag => set of cells
	FaceTag2cells map[int][]CellFaceId // face tag => set of cells
	FaceTag2verts map[int][]int        // face tag => vertices on tagged face
}

// Init computes derived data and binds shape structures to cells
//  Note: must be called after Verts and Cells are set; ReadMsh and GenRect call it
func (o *Mesh) Init(goroutineId int) (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("mesh has not enough vertices (%d)", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("mesh has no cells")
	}

	// vertex related derived data
	o.Ndim = 2
	o.Xmin = o.Verts[0].C[0]
	o.Ymin = o.Verts[0].C[1]
	o.Xmax = o.Xmin
	o.Ymax = o.Ymin
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {

		// check vertex id
		if v.Id != i {
			return chk.Err("vertex ids must coincide with order in vertices list. %d != %d", v.Id, i)
		}
		if len(v.C) != 2 {
			return chk.Err("vertex %d must have 2 coordinates. %d is invalid", v.Id, len(v.C))
		}

		// tags
		if v.Tag < 0 {
			verts := o.VertTag2verts[v.Tag]
			o.VertTag2verts[v.Tag] = append(verts, v)
		}

		// limits
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
	}

	// cell related derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	o.FaceTag2verts = make(map[int][]int)
	for i, c := range o.Cells {

		// check id and tag
		if c.Id != i {
			return chk.Err("cell ids must coincide with order in cells list. %d != %d", c.Id, i)
		}
		if c.Tag >= 0 {
			return chk.Err("cell tags must be negative. %d is invalid", c.Tag)
		}

		// get shape structure
		c.Shp = shp.Get(c.Type, goroutineId)
		if c.Shp == nil {
			return chk.Err("cannot find shape structure for cell type %q", c.Type)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d (%s) must have %d vertices. %d is invalid", c.Id, c.Type, c.Shp.Nverts, len(c.Verts))
		}

		// cell tags
		cells := o.CellTag2cells[c.Tag]
		o.CellTag2cells[c.Tag] = append(cells, c)

		// face tags
		if len(c.FTags) > 0 && len(c.FTags) != len(c.Shp.FaceLocalVerts) {
			return chk.Err("cell %d (%s) must have %d face tags. %d is invalid", c.Id, c.Type, len(c.Shp.FaceLocalVerts), len(c.FTags))
		}
		for j, ftag := range c.FTags {
			if ftag < 0 {
				pairs := o.FaceTag2cells[ftag]
				o.FaceTag2cells[ftag] = append(pairs, CellFaceId{c, j})
				for _, l := range shp.GetFaceLocalVerts(c.Type, j) {
					utl.IntIntsMapAppend(&o.FaceTag2verts, ftag, o.Verts[c.Verts[l]].Id)
				}
			}
		}
	}

	// remove duplicates
	for ftag, verts := range o.FaceTag2verts {
		o.FaceTag2verts[ftag] = utl.IntUnique(verts)
	}
	return
}

// ReadMsh reads a mesh from a JSON file
func ReadMsh(dir, fn string, goroutineId int) (*Mesh, error) {

	// new mesh
	var o Mesh

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := io.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file:\n%v", err)
	}

	// decode
	err = json.Unmarshal(b, &o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}

	// derived data
	err = o.Init(goroutineId)
	if err != nil {
		return nil, chk.Err("mesh file %q is invalid:\n%v", o.FnamePath, err)
	}
	return &o, nil
}

// BryVerts returns the sorted ids of all vertices on faces with any of the given tags
func (o *Mesh) BryVerts(ftags ...int) (verts []int) {
	for _, ftag := range ftags {
		verts = append(verts, o.FaceTag2verts[ftag]...)
	}
	return utl.IntUnique(verts)
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"verts\":[", o.Id, o.Tag, o.Type)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "], \"ftags\":["
	for i, x := range o.FTags {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}
