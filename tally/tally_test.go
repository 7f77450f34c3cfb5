// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tally

import (
	"math"
	"testing"

	"github.com/khurrumsaleem/mcdc-go/types"
	"github.com/khurrumsaleem/mcdc-go/xmpi"
)

func Test_tracklength_roundtrip(t *testing.T) {
	// one history, no reactions: sum of bin over all bins equals total
	// tracklength * weight
	dims := Dims{G: 1, Tn: 1, Xn: 1, Yn: 1, Zn: 1}
	ta := New(KindTracklengthFlux, dims)

	w := 2.0
	segments := []float64{0.3, 0.5, 1.2}
	var totalD float64
	for _, d := range segments {
		ta.ScoreTracklengthFlux(0, 0, 0, 0, 0, d, w)
		totalD += d
	}
	got := ta.TotalBin()
	want := totalD * w
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("got %v want %v", got, want)
	}
}

func Test_closeout_history_and_cycle(t *testing.T) {
	dims := Dims{G: 1, Tn: 1, Xn: 1, Yn: 1, Zn: 1}
	ta := New(KindTracklengthFlux, dims)

	// three histories each scoring 1.0
	for i := 0; i < 3; i++ {
		ta.ScoreTracklengthFlux(0, 0, 0, 0, 0, 1.0, 1.0)
		ta.CloseoutHistory()
	}
	if ta.Bin[0] != 0 {
		t.Fatalf("bin must be zero after closeout")
	}
	if ta.Sum[0] != 3 {
		t.Fatalf("sum should be 3, got %v", ta.Sum[0])
	}

	ta.CloseoutCycle(xmpi.SingleRank{}, 3)
	if len(ta.Mean) != 1 || ta.Mean[0][0] != 1 {
		t.Fatalf("expected mean 1.0, got %+v", ta.Mean)
	}
	if ta.Sdev[0][0] != 0 {
		t.Fatalf("expected zero sdev for constant scores, got %v", ta.Sdev[0][0])
	}
	if ta.Sum[0] != 0 {
		t.Fatalf("sum must be cleared after cycle closeout")
	}
}

func Test_current_and_eddington_components(t *testing.T) {
	dims := Dims{G: 1, Tn: 1, Xn: 1, Yn: 1, Zn: 1}
	cur := New(KindCurrent, dims)
	cur.ScoreCurrent(0, 0, 0, 0, 0, 1.0, 1.0, types.Vec3{X: 1, Y: 0, Z: 0})
	if cur.Bin[0] != 1 || cur.Bin[1] != 0 || cur.Bin[2] != 0 {
		t.Fatalf("unexpected current bins %v", cur.Bin)
	}

	edd := New(KindEddington, dims)
	edd.ScoreEddington(0, 0, 0, 0, 0, 1.0, 1.0, types.Vec3{X: 1, Y: 0, Z: 0})
	// order xx,xy,xz,yy,yz,zz -> only xx nonzero for pure-x direction
	want := []float64{1, 0, 0, 0, 0, 0}
	for i, w := range want {
		if edd.Bin[i] != w {
			t.Fatalf("component %d: got %v want %v", i, edd.Bin[i], w)
		}
	}
}

func Test_crossing_scores_direction_gating(t *testing.T) {
	dims := Dims{G: 1, Tn: 2, Xn: 2, Yn: 1, Zn: 1}
	tx := New(KindCrossingX, dims)
	tx.ScoreCrossingX(0, 0, 0, 0, 0, 1.0, 1.0) // ux>0: scores bin x=1
	if idx, _ := tx.index(0, 0, 1, 0, 0, 0); tx.Bin[idx] != 1.0 {
		t.Fatalf("expected crossing score of 1.0 at x=1")
	}
	tx.ScoreCrossingX(0, 0, 0, 0, 0, 1.0, -1.0) // ux<0: still scores, at bin x=0
	if idx, _ := tx.index(0, 0, 0, 0, 0, 0); tx.Bin[idx] != 1.0 {
		t.Fatalf("expected negative ux crossing to score 1.0 at x=0")
	}
	if tx.TotalBin() != 2.0 {
		t.Fatalf("expected both crossings to score, total=%v", tx.TotalBin())
	}
}

func Test_eigen_bookkeeping(t *testing.T) {
	e := &Eigen{}
	e.ScoreNuSigmaF(0.5, 1.0, 2.0) // nuSigmaF=0.5, w=1, d=2 -> 1.0
	e.CloseoutCycle(xmpi.SingleRank{}, 1.0, false)
	if math.Abs(e.KEff-1.0) > 1e-12 {
		t.Fatalf("expected k_eff=1.0, got %v", e.KEff)
	}
	if len(e.KEffIterates) != 1 {
		t.Fatalf("expected one k_eff iterate recorded")
	}
}
