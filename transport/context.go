// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport implements the event dispatcher and
// the reaction sampler: the per-particle loop that
// computes the four candidate distances, advances the particle by the
// smallest one, scores tracklength-based tallies, and branches into
// scattering/fission/capture/time-reaction on collision. Context
// replaces a global mutable simulation record with an explicit object
// threaded through every function, with clear sub-object ownership.
package transport

import (
	"github.com/khurrumsaleem/mcdc-go/config"
	"github.com/khurrumsaleem/mcdc-go/diag"
	"github.com/khurrumsaleem/mcdc-go/geom"
	"github.com/khurrumsaleem/mcdc-go/material"
	"github.com/khurrumsaleem/mcdc-go/mesh"
	"github.com/khurrumsaleem/mcdc-go/tally"
	"github.com/khurrumsaleem/mcdc-go/xmpi"
)

// TallySet holds the subset of enabled tally kinds that this
// run scores into.
type TallySet struct {
	TracklengthFlux *tally.Tally
	CrossingX       *tally.Tally
	CrossingT       *tally.Tally
	Current         *tally.Tally
	Eddington       *tally.Tally
}

// NewTallySet allocates only the tallies enabled in spec.
func NewTallySet(spec config.TallySpec, g int) *TallySet {
	dims := tally.Dims{
		G:  g,
		Tn: len(spec.Mesh.T) - 1,
		Xn: len(spec.Mesh.X) - 1,
		Yn: len(spec.Mesh.Y) - 1,
		Zn: len(spec.Mesh.Z) - 1,
	}
	ts := &TallySet{}
	if spec.TracklengthFlux {
		ts.TracklengthFlux = tally.New(tally.KindTracklengthFlux, dims)
	}
	if spec.CrossingXFlux {
		ts.CrossingX = tally.New(tally.KindCrossingX, dims)
	}
	if spec.CrossingTFlux {
		ts.CrossingT = tally.New(tally.KindCrossingT, dims)
	}
	if spec.Current {
		ts.Current = tally.New(tally.KindCurrent, dims)
	}
	if spec.Eddington {
		ts.Eddington = tally.New(tally.KindEddington, dims)
	}
	return ts
}

// all returns every tally slot in this set; disabled kinds are nil.
func (ts *TallySet) all() []*tally.Tally {
	return []*tally.Tally{ts.TracklengthFlux, ts.CrossingX, ts.CrossingT, ts.Current, ts.Eddington}
}

// CloseoutHistory closes out every enabled tally's history bin.
func (ts *TallySet) CloseoutHistory() {
	for _, t := range ts.all() {
		if t != nil {
			t.CloseoutHistory()
		}
	}
}

// ResetBin discards every enabled tally's current bin without folding
// it into Sum/SumSq (, inactive cycles).
func (ts *TallySet) ResetBin() {
	for _, t := range ts.all() {
		if t != nil {
			t.ResetBin()
		}
	}
}

// CloseoutCycle finalizes mean/sdev statistics across every enabled
// tally, using nHist total histories contributed across all active
// cycles.
func (ts *TallySet) CloseoutCycle(comm xmpi.Comm, nHist float64) {
	for _, t := range ts.all() {
		if t != nil {
			t.CloseoutCycle(comm, nHist)
		}
	}
}

// Context is the explicit, passed-around simulation context: static
// geometry/material/mesh/technique configuration plus the mutable
// tally/eigenvalue/diagnostic accumulators every event-dispatcher call
// mutates.
type Context struct {
	Surfaces  map[int]*geom.Surface
	Cells     []*geom.Cell
	Materials map[int]*material.Material
	Mesh      *mesh.Mesh

	Tallies *TallySet
	Eigen   *tally.Eigen
	Diag    *diag.Counters

	Technique config.Technique
	Settings  config.Settings

	// current-cycle eigenvalue state, updated by the cycle driver
	// between cycles
	KEff          float64
	AlphaEff      float64
	EigenvalueMode bool
	AlphaMode     bool
}

// CellByID returns the *geom.Cell with the given id, or nil.
func (ctx *Context) CellByID(id int) *geom.Cell {
	for _, c := range ctx.Cells {
		if c.ID == id {
			return c
		}
	}
	return nil
}
