// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simulation

import (
	"math"
	"testing"

	"github.com/khurrumsaleem/mcdc-go/config"
	"github.com/khurrumsaleem/mcdc-go/geom"
	"github.com/khurrumsaleem/mcdc-go/material"
	"github.com/khurrumsaleem/mcdc-go/mesh"
)

// pureAbsorberConfig builds a pure-absorber scenario: a slab of pure
// absorber (Σ_T=Σ_C=1, no scatter, no fission), a point source at the
// slab's low face aimed down the slab axis, one group. The surviving
// fraction after crossing the slab should match e^{-Σ_T*d} within a
// few standard deviations.
func pureAbsorberConfig() *config.Config {
	planes := []*geom.Surface{
		geom.NewLinear(1, 1, 0, 0, 0, true, false),   // x=0, vacuum
		geom.NewLinear(2, 1, 0, 0, -10, true, false), // x=10, vacuum
		geom.NewLinear(3, 0, 1, 0, 1e6, false, true), // y reflective
		geom.NewLinear(4, 0, 1, 0, -1e6, false, true),
		geom.NewLinear(5, 0, 0, 1, 1e6, false, true),
		geom.NewLinear(6, 0, 0, 1, -1e6, false, true),
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
		ID: 1, Total: []float64{1}, Capture: []float64{1}, Scatter: []float64{0}, Fission: []float64{0},
		NuP: []float64{0}, NuS: []float64{0}, Speed: []float64{1},
		ScatterChi: [][]float64{{1}}, FissionChiPrompt: [][]float64{{1}},
		NuDelayed: [][]float64{{}}, FissionChiDelayed: [][]float64{}, DecayConstant: []float64{},
	}
	m := &mesh.Mesh{T: []float64{0, 1e10}, X: []float64{0, 10}, Y: []float64{-1e6, 1e6}, Z: []float64{-1e6, 1e6}}
	src := &config.SourceSpec{
		Direction: [3]float64{1, 0, 0}, Isotropic: false,
		T0: 0, T1: 0, Probability: 1, GroupProb: []float64{1},
	}

	return &config.Config{
		Materials: []*material.Material{mat},
		Surfaces:  planes,
		Cells:     []*geom.Cell{cell},
		Sources:   []*config.SourceSpec{src},
		Tally:     config.TallySpec{Mesh: m, TracklengthFlux: true},
		Settings:  config.Settings{NHist: 200, NCycle: 1, TimeBoundary: 1e10, Stride: 4000, SeedBase: 11},
	}
}

func Test_simulation_run_populates_results(t *testing.T) {
	cfg := pureAbsorberConfig()
	sim := NewSimulation(cfg, nil)
	if err := sim.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(sim.Results.Tallies) != 1 {
		t.Fatalf("expected 1 enabled tally result, got %d", len(sim.Results.Tallies))
	}
	tr := sim.Results.Tallies[0]
	if tr.Name != "tracklength_flux" {
		t.Fatalf("expected tracklength_flux, got %q", tr.Name)
	}
	if len(tr.Mean) != 1 {
		t.Fatalf("expected 1 cycle snapshot, got %d", len(tr.Mean))
	}
	if sim.Results.Runtime <= 0 {
		t.Fatalf("expected positive runtime")
	}

	// analytical check: with no scattering and no fission, a history's
	// tracklength is min(d_collision, 10) with d_collision~Exp(Σ_T), so
	// its expectation is (1-e^{-Σ_T*d})/Σ_T; compare against that using
	// the run's own estimated standard deviation of the mean.
	sigmaT, slabWidth := 1.0, 10.0
	expected := (1 - math.Exp(-sigmaT*slabWidth)) / sigmaT
	mean, sdev := tr.Mean[0][0], tr.Sdev[0][0]
	if diff := math.Abs(mean - expected); diff > 3*sdev {
		t.Fatalf("tracklength flux mean %v not within 3 sigma (%v) of analytical %v", mean, 3*sdev, expected)
	}
}
