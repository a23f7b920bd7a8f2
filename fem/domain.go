// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/benhills/icepack/mice"
	"github.com/benhills/icepack/msh"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// BcKind selects the boundary condition bound to a mesh face tag
type BcKind int

const (
	// BcFree is the natural condition: zero membrane traction
	BcFree BcKind = iota

	// BcDirichlet prescribes the velocity on the face; the values are taken
	// from the trace of the initial guess of the diagnostic solve
	BcDirichlet

	// BcCalving applies the hydrostatic traction of the terminus: the
	// depth-integrated pressure of the ice column minus that of the ocean
	// water below sea level
	BcCalving
)

// String returns the name of the boundary-condition kind
func (k BcKind) String() string {
	switch k {
	case BcFree:
		return "free"
	case BcDirichlet:
		return "dirichlet"
	case BcCalving:
		return "calving"
	}
	return io.Sf("BcKind(%d)", int(k))
}

// DefaultBCs is the conventional layout on the rectangular meshes of
// msh.GenRect: velocity prescribed on the inflow (left) edge, calving front
// on the right edge, the remaining boundary traction-free
func DefaultBCs() map[int]BcKind {
	return map[int]BcKind{
		msh.TagLeft:  BcDirichlet,
		msh.TagRight: BcCalving,
	}
}

// Domain holds the derived data of one model: the element list, the equation
// numbering and the boundary conditions resolved against the mesh. Vertex vid
// carries the two velocity equations 2*vid and 2*vid+1.
type Domain struct {

	// input
	Msh *msh.Mesh      // the mesh
	Bcs map[int]BcKind // face tag → condition kind

	// derived
	Elems   []*ElemSSA // one element per mesh cell
	Ny      int        // total number of equations (two per vertex)
	NnzKb   int        // upper bound of nonzeros in the tangent matrix
	DirEqs  []int      // sorted equations constrained by Dirichlet faces
	DirMask []bool     // DirMask[eq] == true means eq is constrained
}

// NewDomain resolves bcs against the mesh and builds the element list. Every
// tag in bcs must exist in the mesh; tagging is the caller's contract and a
// silent mismatch would turn a prescribed edge into a free one.
func NewDomain(m *msh.Mesh, ice *mice.Glen, cst *mice.Consts, bcs map[int]BcKind) (o *Domain, err error) {

	// check tags
	for tag, kind := range bcs {
		if _, ok := m.FaceTag2cells[tag]; !ok {
			return nil, chk.Err("boundary condition %q: face tag %d does not exist in mesh %q", kind, tag, m.FnamePath)
		}
	}

	// essential
	o = new(Domain)
	o.Msh = m
	o.Bcs = bcs
	o.Ny = 2 * len(m.Verts)

	// Dirichlet equations
	o.DirMask = make([]bool, o.Ny)
	for tag, kind := range bcs {
		if kind != BcDirichlet {
			continue
		}
		for _, vid := range m.FaceTag2verts[tag] {
			o.DirMask[2*vid] = true
			o.DirMask[2*vid+1] = true
		}
	}
	for eq, pres := range o.DirMask {
		if pres {
			o.DirEqs = append(o.DirEqs, eq)
		}
	}

	// calving faces, grouped per cell
	calv := make(map[int][]int)
	for tag, kind := range bcs {
		if kind != BcCalving {
			continue
		}
		for _, cf := range m.FaceTag2cells[tag] {
			calv[cf.C.Id] = append(calv[cf.C.Id], cf.Fid)
		}
	}

	// elements
	o.Elems = make([]*ElemSSA, len(m.Cells))
	for i, c := range m.Cells {
		fids := calv[c.Id]
		sort.Ints(fids)
		var e *ElemSSA
		if e, err = newElemSSA(c, m, ice, cst, fids); err != nil {
			return nil, chk.Err("cannot allocate element for cell %d:\n%v", c.Id, err)
		}
		o.Elems[i] = e
		o.NnzKb += e.Nu * e.Nu
	}
	return
}
