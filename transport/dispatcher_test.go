// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"math"
	"testing"

	"github.com/khurrumsaleem/mcdc-go/bank"
	"github.com/khurrumsaleem/mcdc-go/config"
	"github.com/khurrumsaleem/mcdc-go/diag"
	"github.com/khurrumsaleem/mcdc-go/geom"
	"github.com/khurrumsaleem/mcdc-go/material"
	"github.com/khurrumsaleem/mcdc-go/mesh"
	"github.com/khurrumsaleem/mcdc-go/rng"
	"github.com/khurrumsaleem/mcdc-go/tally"
	"github.com/khurrumsaleem/mcdc-go/types"
)

// Test_slab_reflection_bounces drives a single particle through a
// 1-unit-wide slab bounded by two reflective planes (x=0, x=1) across
// repeated reflections, the way a real history would be driven by the
// source loop, rather than unit-testing Surface.ApplyBC in isolation.
// With zero cross section the particle never collides, so every
// Advance call resolves to a SURFACE event and the particle must come
// to rest, after an even number of bounces, exactly on one of the two
// bounding planes.
func Test_slab_reflection_bounces(t *testing.T) {
	left := geom.NewLinear(1, 1, 0, 0, 0, false, true)   // x = 0, reflective
	right := geom.NewLinear(2, 1, 0, 0, -1, false, true) // x = 1, reflective
	surfaces := map[int]*geom.Surface{1: left, 2: right}

	cell := &geom.Cell{
		ID: 1,
		Surfaces: []geom.BoundingSurface{
			{SurfaceID: 1, Positive: true},
			{SurfaceID: 2, Positive: false},
		},
		MaterialID: 1,
	}

	mat := &material.Material{
		ID: 1, Total: []float64{0}, Capture: []float64{0}, Scatter: []float64{0}, Fission: []float64{0},
		NuP: []float64{0}, NuS: []float64{0}, Speed: []float64{1},
		ScatterChi: [][]float64{{1}}, FissionChiPrompt: [][]float64{{1}},
		NuDelayed: [][]float64{{}}, FissionChiDelayed: [][]float64{}, DecayConstant: []float64{},
	}

	m := &mesh.Mesh{T: []float64{0, 1e12}, X: []float64{-1e6, 1e6}, Y: []float64{-1e6, 1e6}, Z: []float64{-1e6, 1e6}}

	ctx := &Context{
		Surfaces:  surfaces,
		Cells:     []*geom.Cell{cell},
		Materials: map[int]*material.Material{1: mat},
		Mesh:      m,
		Tallies:   &TallySet{},
		Eigen:     &tally.Eigen{},
		Diag:      &diag.Counters{},
		Settings:  config.Settings{TimeBoundary: 1e12},
	}

	p := &bank.Particle{X: 0.5, Ux: 1, Speed: 1, Weight: 1, Alive: true, CellID: 1}
	str := rng.New(1, 1000)
	historyBank := bank.New("history", 4)
	censusBank := bank.New("census", 4)

	bounces := 0
	for bounces < 10 {
		ev := ctx.Advance(p, str, historyBank, censusBank)
		if ev.Kind != types.EventSurface {
			t.Fatalf("expected every event to be a reflection, got %v at bounce %d", ev.Kind, bounces)
		}
		if !p.Alive {
			t.Fatalf("reflective boundary must not kill the particle")
		}
		bounces++
	}

	if bounces != 10 {
		t.Fatalf("expected exactly 10 bounces, got %d", bounces)
	}
	atLow := math.Abs(p.X) < 1e-9
	atHigh := math.Abs(p.X-1) < 1e-9
	if !atLow && !atHigh {
		t.Fatalf("expected final position on a bounding plane (|x| in {0,1}), got x=%v", p.X)
	}
}
