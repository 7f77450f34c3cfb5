// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tally implements the space-time-angle-mesh tally
// accumulators: per-bin flux/current/Eddington scoring, history
// closeout, and cycle statistics (mean/standard deviation), plus the
// running eigenvalue bookkeeping (ΣνΣ_F, Σ1/v) accumulated during
// tracklength scoring. Dense flat arrays mirror gofem's flat,
// equation-number-indexed solution vectors (fem/domain.go's Sol.Y)
// rather than nested slices.
package tally

import (
	"math"

	"github.com/khurrumsaleem/mcdc-go/types"
	"github.com/khurrumsaleem/mcdc-go/xmpi"
)

// Kind names an enabled tally score.
type Kind int

const (
	KindTracklengthFlux Kind = iota
	KindCurrent              // 3 components (x,y,z)
	KindEddington            // 6 components (xx,xy,xz,yy,yz,zz)
	KindCrossingX
	KindCrossingT
)

// Components returns the number of vector/tensor components stored
// per (g,t,x,y,z) bin for this score kind.
func (k Kind) Components() int {
	switch k {
	case KindCurrent:
		return 3
	case KindEddington:
		return 6
	default:
		return 1
	}
}

// Dims describes the mesh extents a Tally is built over: G energy
// groups and Tn/Xn/Yn/Zn mesh bins (each the number of cells, i.e.
// len(grid)-1).
type Dims struct {
	G, Tn, Xn, Yn, Zn int
}

func (d Dims) size(components int) int {
	return d.G * d.Tn * d.Xn * d.Yn * d.Zn * components
}

// Tally holds the Bin/Sum/SumSq accumulator arrays and the per-cycle
// Mean/Sdev snapshots for one enabled score.
type Tally struct {
	Kind Kind
	Dims Dims

	Bin   []float64 // current history's partial
	Sum   []float64 // accumulated across histories in the current cycle
	SumSq []float64 // sum of squares

	// per-cycle snapshots, appended by CloseoutCycle
	Mean [][]float64
	Sdev [][]float64
}

// New allocates a zeroed tally for the given kind and dimensions.
func New(kind Kind, dims Dims) *Tally {
	n := dims.size(kind.Components())
	return &Tally{
		Kind:  kind,
		Dims:  dims,
		Bin:   make([]float64, n),
		Sum:   make([]float64, n),
		SumSq: make([]float64, n),
	}
}

// index flattens (g,t,x,y,z,c) into Bin/Sum/SumSq's linear index.
// Returns -1 (and ok=false) if any spatial/energy index is out of the
// valid [0,len) range — -1/len-1 sentinels mean "out of grid", which
// this tally silently does not score, a numerical-silent error rather
// than a fatal one.
func (t *Tally) index(g, tt, x, y, z, c int) (int, bool) {
	d := t.Dims
	if g < 0 || g >= d.G || tt < 0 || tt >= d.Tn || x < 0 || x >= d.Xn || y < 0 || y >= d.Yn || z < 0 || z >= d.Zn {
		return 0, false
	}
	comps := t.Kind.Components()
	if c < 0 || c >= comps {
		return 0, false
	}
	idx := (((((g*d.Tn+tt)*d.Xn+x)*d.Yn+y)*d.Zn+z)*comps + c)
	return idx, true
}

// ScoreTracklengthFlux adds d*w to the tracklength-flux bin at
// (g,t,x,y,z).
func (t *Tally) ScoreTracklengthFlux(g, tt, x, y, z int, d, w float64) {
	if idx, ok := t.index(g, tt, x, y, z, 0); ok {
		t.Bin[idx] += d * w
	}
}

// ScoreCurrent adds flux*u_i to each of the 3 current components at
// (g,t,x,y,z), where flux = d*w (the tracklength flux of this
// segment).
func (t *Tally) ScoreCurrent(g, tt, x, y, z int, d, w float64, u types.Vec3) {
	flux := d * w
	comps := [3]float64{u.X, u.Y, u.Z}
	for c := 0; c < 3; c++ {
		if idx, ok := t.index(g, tt, x, y, z, c); ok {
			t.Bin[idx] += flux * comps[c]
		}
	}
}

// eddington component order: xx, xy, xz, yy, yz, zz
var eddingtonPairs = [6][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}

// ScoreEddington adds flux*u_i*u_j to each of the 6 Eddington tensor
// components at (g,t,x,y,z).
func (t *Tally) ScoreEddington(g, tt, x, y, z int, d, w float64, u types.Vec3) {
	flux := d * w
	comps := [3]float64{u.X, u.Y, u.Z}
	for c, pair := range eddingtonPairs {
		if idx, ok := t.index(g, tt, x, y, z, c); ok {
			t.Bin[idx] += flux * comps[pair[0]] * comps[pair[1]]
		}
	}
}

// ScoreCrossingX scores a surface-crossing flux in the x mesh axis:
// flux = w/|ux|, always scored regardless of direction; the bin index
// is incremented by 1 (the bin the particle is entering) only when
// ux>0, otherwise the flux is scored at the un-incremented bin.
func (t *Tally) ScoreCrossingX(g, tt, x, y, z int, w, ux float64) {
	flux := w / math.Abs(ux)
	if ux > 0 {
		x++
	}
	if idx, ok := t.index(g, tt, x, y, z, 0); ok {
		t.Bin[idx] += flux
	}
}

// ScoreCrossingT scores a surface-crossing flux in the t mesh axis:
// flux = w*v, added to the bin one index above the crossing.
func (t *Tally) ScoreCrossingT(g, tt, x, y, z int, w, v float64) {
	flux := w * v
	if idx, ok := t.index(g, tt+1, x, y, z, 0); ok {
		t.Bin[idx] += flux
	}
}

// CloseoutHistory folds Bin into Sum/SumSq and zeroes Bin.
func (t *Tally) CloseoutHistory() {
	for i, b := range t.Bin {
		t.Sum[i] += b
		t.SumSq[i] += b * b
		t.Bin[i] = 0
	}
}

// ResetBin zeroes Bin without folding it into Sum/SumSq, used by the
// cycle driver to discard an inactive cycle's accumulated scores:
// inactive cycles must still clear Bin for the next cycle without
// contributing to the converged statistics.
func (t *Tally) ResetBin() {
	for i := range t.Bin {
		t.Bin[i] = 0
	}
}

// CloseoutCycle reduces Sum/SumSq across ranks, computes this cycle's
// mean/sdev snapshot (appended to Mean/Sdev), and clears Sum/SumSq for
// the next cycle.
func (t *Tally) CloseoutCycle(comm xmpi.Comm, nHist float64) {
	n := len(t.Sum)
	mean := make([]float64, n)
	sdev := make([]float64, n)
	for i := range t.Sum {
		sum := comm.ReduceMaster(t.Sum[i])
		sumSq := comm.ReduceMaster(t.SumSq[i])
		m := sum / nHist
		mean[i] = m
		if nHist > 1 {
			variance := (sumSq/nHist - m*m) / (nHist - 1)
			if variance < 0 {
				variance = 0
			}
			sdev[i] = math.Sqrt(variance)
		}
		t.Sum[i] = 0
		t.SumSq[i] = 0
	}
	t.Mean = append(t.Mean, mean)
	t.Sdev = append(t.Sdev, sdev)
}

// TotalBin returns the sum of all Bin entries — used by the
// tracklength-roundtrip property test.
func (t *Tally) TotalBin() float64 {
	var s float64
	for _, b := range t.Bin {
		s += b
	}
	return s
}
