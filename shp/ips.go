// Copyright 2016 The Icepack Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Ipoint implements integration point data: natural coordinates and weight {r, s, t, w}
type Ipoint []float64

// Gauss-Legendre coordinates
const (
	GP22 = 0.5773502691896257 // 1/sqrt(3): points of 2-point rule
	GP31 = 0.7745966692414834 // sqrt(3/5): outer points of 3-point rule
	GW30 = 0.8888888888888888 // 8/9: centre weight of 3-point rule
	GW31 = 0.5555555555555556 // 5/9: outer weight of 3-point rule
)

// triangle rules (weights include the 1/2 reference-triangle area factor)
const (
	TA61 = 0.445948490915965  // 6-point rule: first group coordinate
	TB61 = 0.108103018168070  // 1 - 2*TA61
	TW61 = 0.111690794839005  // first group weight
	TA62 = 0.091576213509771  // second group coordinate
	TB62 = 0.816847572980459  // 1 - 2*TA62
	TW62 = 0.054975871827661  // second group weight
)

// ipsfactory holds integration point sets for the basic geometries, keyed by "geo_nip"
var ipsfactory = map[string][]Ipoint{

	"lin_1": {
		{0, 0, 0, 2},
	},
	"lin_2": {
		{-GP22, 0, 0, 1},
		{GP22, 0, 0, 1},
	},
	"lin_3": {
		{-GP31, 0, 0, GW31},
		{0, 0, 0, GW30},
		{GP31, 0, 0, GW31},
	},

	"tri_1": {
		{1.0 / 3.0, 1.0 / 3.0, 0, 1.0 / 2.0},
	},
	"tri_3": {
		{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
	},
	"tri_6": {
		{TA61, TA61, 0, TW61},
		{TB61, TA61, 0, TW61},
		{TA61, TB61, 0, TW61},
		{TA62, TA62, 0, TW62},
		{TB62, TA62, 0, TW62},
		{TA62, TB62, 0, TW62},
	},

	"qua_1": {
		{0, 0, 0, 4},
	},
	"qua_4": {
		{-GP22, -GP22, 0, 1},
		{GP22, -GP22, 0, 1},
		{-GP22, GP22, 0, 1},
		{GP22, GP22, 0, 1},
	},
	"qua_9": {
		{-GP31, -GP31, 0, GW31 * GW31},
		{0, -GP31, 0, GW30 * GW31},
		{GP31, -GP31, 0, GW31 * GW31},
		{-GP31, 0, 0, GW31 * GW30},
		{0, 0, 0, GW30 * GW30},
		{GP31, 0, 0, GW31 * GW30},
		{-GP31, GP31, 0, GW31 * GW31},
		{0, GP31, 0, GW30 * GW31},
		{GP31, GP31, 0, GW31 * GW31},
	},
}

// ipsdefault holds the default number of integration points per cell type
var ipsdefault = map[string]int{
	"lin2": 2,
	"lin3": 3,
	"tri3": 3,
	"tri6": 6,
	"qua4": 4,
	"qua8": 9,
}

// GetIps returns a set of integration points for the given cell type
//  Note: nip == 0 selects the default rule for the cell type
func GetIps(geoType string, nip int) (ips []Ipoint, err error) {
	if len(geoType) < 4 {
		return nil, chk.Err("geometry type %q is invalid", geoType)
	}
	if nip == 0 {
		var ok bool
		nip, ok = ipsdefault[geoType]
		if !ok {
			return nil, chk.Err("geometry type %q has no default integration rule", geoType)
		}
	}
	key := io.Sf("%s_%d", geoType[:3], nip)
	ips, ok := ipsfactory[key]
	if !ok {
		return nil, chk.Err("cannot find integration points for %q with nip=%d", geoType, nip)
	}
	return
}
