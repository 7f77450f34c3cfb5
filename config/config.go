// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the in-memory simulation configuration: the
// record an external input-construction layer is expected to build
// and hand to the simulation driver. Structured as plain structs with
// json tags and SetDefault/PostProcess methods rather than as a
// fluent builder.
package config

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/khurrumsaleem/mcdc-go/geom"
	"github.com/khurrumsaleem/mcdc-go/material"
	"github.com/khurrumsaleem/mcdc-go/mesh"
)

// Settings holds the run-control parameters for one simulation.
type Settings struct {
	NHist        int     `json:"nhist"`
	NCycle       int     `json:"ncycle"`
	NInactive    int     `json:"ninactive"`
	TimeBoundary float64 `json:"time_boundary"`
	ModeEigenvalue bool  `json:"mode_eigenvalue"`
	ModeAlpha    bool    `json:"mode_alpha"`
	ProgressBar  bool    `json:"progress_bar"`

	DirOut string `json:"dirout"`

	SeedBase uint64 `json:"seed_base"`
	Stride   uint64 `json:"stride"`
}

// SetDefault fills unset fields with their default values, applied
// fill-if-zero rather than unconditional: a Config is typically built
// directly in memory by an external input-construction layer rather
// than exclusively through a JSON decode step that would otherwise
// overwrite these defaults field by field, so SetDefault must be safe
// to call after the caller has already set some fields.
func (s *Settings) SetDefault() {
	if s.NHist == 0 {
		s.NHist = 1000
	}
	if s.NCycle == 0 {
		s.NCycle = 1
	}
	if s.TimeBoundary == 0 {
		s.TimeBoundary = 1e10
	}
	if s.DirOut == "" {
		s.DirOut = "/tmp/mcdc"
	}
	if s.SeedBase == 0 {
		s.SeedBase = 1
	}
}

// PostProcess derives computed fields: the stride must be at least the
// population size so per-history RNG streams never overlap (rank r
// begins its first history at seed_base + mpi_work_start*stride).
func (s *Settings) PostProcess() {
	if s.DirOut == "" {
		s.DirOut = "/tmp/mcdc"
	}
	if s.Stride < uint64(s.NHist) {
		s.Stride = uint64(s.NHist) * 4
	}
	if s.Stride == 0 {
		s.Stride = 1
	}
}

// WeightWindow holds a mesh-indexed splitting/Russian-roulette target
// array.
type WeightWindow struct {
	Enabled bool
	Mesh    *mesh.Mesh
	Target  []float64 // [g*Tn*Xn*Yn*Zn] target weight per bin
}

// Technique holds the optional technique flags a run may enable.
type Technique struct {
	PopulationControl  bool `json:"population_control"`
	ImplicitCapture    bool `json:"implicit_capture"`
	WeightedEmission   bool `json:"weighted_emission"`
	IcGenerator        bool `json:"ic_generator"`
	BranchlessCollision bool `json:"branchless_collision"`

	WeightWindow WeightWindow `json:"-"`
}

// SourceSpec describes one registered source.
type SourceSpec struct {
	Isotropic bool
	Direction [3]float64 // used when !Isotropic

	// position: either a fixed point, or a box [lo,hi] per axis sampled
	// uniformly
	Box      bool
	Position [3]float64
	BoxLo    [3]float64
	BoxHi    [3]float64

	GroupProb []float64 // discrete distribution over energy groups

	T0, T1 float64 // time window

	Probability float64 // relative weight among registered sources
}

// TallySpec describes the tally mesh and which scores are enabled.
type TallySpec struct {
	Mesh *mesh.Mesh

	TracklengthFlux bool
	CrossingXFlux   bool
	CrossingTFlux   bool
	Current         bool
	Eddington       bool
}

// Config is the complete in-memory simulation configuration.
type Config struct {
	Materials []*material.Material
	Surfaces  []*geom.Surface
	Cells     []*geom.Cell
	Sources   []*SourceSpec
	Tally     TallySpec
	Settings  Settings
	Technique Technique
}

// SetDefault sets defaults on the settings sub-record.
func (c *Config) SetDefault() {
	c.Settings.SetDefault()
}

// PostProcess derives computed fields and validates materials.
func (c *Config) PostProcess() {
	c.Settings.PostProcess()
	for _, m := range c.Materials {
		m.Validate()
	}
	if len(c.Sources) == 0 {
		chk.Panic("config: at least one source must be registered")
	}
}

// SurfaceMap returns the surfaces indexed by ID, for geom.Check/SetCell.
func (c *Config) SurfaceMap() map[int]*geom.Surface {
	m := make(map[int]*geom.Surface, len(c.Surfaces))
	for _, s := range c.Surfaces {
		m[s.ID] = s
	}
	return m
}

// MaterialMap returns the materials indexed by ID.
func (c *Config) MaterialMap() map[int]*material.Material {
	m := make(map[int]*material.Material, len(c.Materials))
	for _, mm := range c.Materials {
		m[mm.ID] = mm
	}
	return m
}

// jsonDoc is the on-disk JSON shape for the settings/technique portion
// of a Config; materials/surfaces/cells/sources carry pointers and
// interfaces that the external input-construction layer is
// responsible for building directly in memory, so only the plain-data
// settings/technique record round-trips through JSON here.
type jsonDoc struct {
	Settings  Settings  `json:"settings"`
	Technique Technique `json:"technique"`
}

// ReadSettingsJSON loads Settings/Technique from a JSON file, mirroring
// inp.ReadSim's read-from-path idiom.
func ReadSettingsJSON(path string) (Settings, Technique, error) {
	var doc jsonDoc
	data, err := os.ReadFile(path)
	if err != nil {
		return doc.Settings, doc.Technique, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc.Settings, doc.Technique, err
	}
	return doc.Settings, doc.Technique, nil
}
