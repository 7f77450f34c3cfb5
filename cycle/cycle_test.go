// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cycle

import (
	"testing"

	"github.com/khurrumsaleem/mcdc-go/config"
	"github.com/khurrumsaleem/mcdc-go/diag"
	"github.com/khurrumsaleem/mcdc-go/geom"
	"github.com/khurrumsaleem/mcdc-go/material"
	"github.com/khurrumsaleem/mcdc-go/mesh"
	"github.com/khurrumsaleem/mcdc-go/tally"
	"github.com/khurrumsaleem/mcdc-go/transport"
	"github.com/khurrumsaleem/mcdc-go/xmpi"
)

// infiniteMediumConfig builds an infinite-medium scenario: one group,
// Σ_T=1, Σ_F=0.5, ν=2, Σ_S=0, isotropic, a reflective box standing in for an
// infinite medium (reflective everywhere means no leakage, matching
// the "infinite medium" analytic k∞ = νΣ_F/Σ_T = 1.0).
func infiniteMediumConfig() *config.Config {
	planes := []*geom.Surface{
		geom.NewLinear(1, 1, 0, 0, 0, false, true),  // x=0
		geom.NewLinear(2, 1, 0, 0, -1, false, true), // x=1
		geom.NewLinear(3, 0, 1, 0, 0, false, true),
		geom.NewLinear(4, 0, 1, 0, -1, false, true),
		geom.NewLinear(5, 0, 0, 1, 0, false, true),
		geom.NewLinear(6, 0, 0, 1, -1, false, true),
	}
	cell := &geom.Cell{
		ID: 1,
		Surfaces: []geom.BoundingSurface{
			{SurfaceID: 1, Positive: true}, {SurfaceID: 2, Positive: false},
			{SurfaceID: 3, Positive: true}, {SurfaceID: 4, Positive: false},
			{SurfaceID: 5, Positive: true}, {SurfaceID: 6, Positive: false},
		},
		MaterialID: 1,
	}
	mat := &material.Material{
		ID: 1, Total: []float64{1}, Capture: []float64{0.5}, Scatter: []float64{0}, Fission: []float64{0.5},
		NuP: []float64{2}, NuS: []float64{0}, Speed: []float64{1},
		ScatterChi: [][]float64{{1}}, FissionChiPrompt: [][]float64{{1}},
		NuDelayed: [][]float64{{}}, FissionChiDelayed: [][]float64{}, DecayConstant: []float64{},
	}
	m := &mesh.Mesh{T: []float64{0, 1e10}, X: []float64{0, 1}, Y: []float64{0, 1}, Z: []float64{0, 1}}
	src := &config.SourceSpec{
		Box: true, BoxLo: [3]float64{0, 0, 0}, BoxHi: [3]float64{1, 1, 1},
		Isotropic: true, T0: 0, T1: 0, Probability: 1, GroupProb: []float64{1},
	}

	return &config.Config{
		Materials: []*material.Material{mat},
		Surfaces:  planes,
		Cells:     []*geom.Cell{cell},
		Sources:   []*config.SourceSpec{src},
		Tally:     config.TallySpec{Mesh: m, TracklengthFlux: true},
		Settings: config.Settings{
			NHist: 500, NCycle: 50, NInactive: 10, TimeBoundary: 1e10,
			ModeEigenvalue: true, Stride: 4000, SeedBase: 1,
		},
	}
}

func newContext(cfg *config.Config) *transport.Context {
	return &transport.Context{
		Surfaces:  cfg.SurfaceMap(),
		Cells:     cfg.Cells,
		Materials: cfg.MaterialMap(),
		Mesh:      cfg.Tally.Mesh,
		Tallies:   transport.NewTallySet(cfg.Tally, 1),
		Eigen:     &tally.Eigen{},
		Diag:      &diag.Counters{},
		Technique: cfg.Technique,
		Settings:  cfg.Settings,
	}
}

func Test_work_split_covers_all_histories_exactly_once(t *testing.T) {
	comm := &xmpi.RankComm{Locals: make([]int64, 4)}
	total := 0
	for r := 0; r < 4; r++ {
		comm.MyRank = r
		start, size := WorkSplit(comm, 23)
		if start != total {
			t.Fatalf("rank %d starts at %d, want %d (contiguous, non-overlapping slices)", r, start, total)
		}
		total += size
	}
	if total != 23 {
		t.Fatalf("work split total = %d, want 23", total)
	}
}

func Test_infinite_medium_keff_converges_near_one(t *testing.T) {
	cfg := infiniteMediumConfig()
	ctx := newContext(cfg)
	Run(ctx, cfg, xmpi.SingleRank{}, cfg.Settings.SeedBase)

	if len(ctx.Eigen.KEffIterates) != cfg.Settings.NCycle {
		t.Fatalf("expected %d k_eff iterates, got %d", cfg.Settings.NCycle, len(ctx.Eigen.KEffIterates))
	}

	last10 := ctx.Eigen.KEffIterates[len(ctx.Eigen.KEffIterates)-10:]
	var mean float64
	for _, k := range last10 {
		mean += k
	}
	mean /= float64(len(last10))

	if diff := mean - 1.0; diff > 0.05 || diff < -0.05 {
		t.Fatalf("k_eff estimate %v too far from analytic k_inf=1.0", mean)
	}
}
