// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simulation is the top-level driver shim, mirroring the
// teacher's fem.FEM analysis object (fem/fem.go): one struct
// constructed from a configuration record, with a single Run method
// that wires the static geometry/material/mesh into a transport
// context and hands it to the cycle driver, then exposes the
// finished tallies/eigenvalue iterates as a Results record.
package simulation

import (
	"time"

	"github.com/khurrumsaleem/mcdc-go/config"
	"github.com/khurrumsaleem/mcdc-go/cycle"
	"github.com/khurrumsaleem/mcdc-go/diag"
	"github.com/khurrumsaleem/mcdc-go/tally"
	"github.com/khurrumsaleem/mcdc-go/transport"
	"github.com/khurrumsaleem/mcdc-go/xmpi"
)

// Simulation is one configured run: static input plus the mutable
// transport context built from it.
type Simulation struct {
	Config *config.Config
	Comm   xmpi.Comm
	Ctx    *transport.Context

	Results Results
}

// NewSimulation builds a Simulation from a fully populated
// configuration record, defaulting to the single-rank stub
// communicator when comm is nil.
func NewSimulation(cfg *config.Config, comm xmpi.Comm) *Simulation {
	cfg.SetDefault()
	cfg.PostProcess()
	if comm == nil {
		comm = xmpi.SingleRank{}
	}

	g := 0
	for _, m := range cfg.Materials {
		if m.NumGroups() > g {
			g = m.NumGroups()
		}
	}

	ctx := &transport.Context{
		Surfaces:  cfg.SurfaceMap(),
		Cells:     cfg.Cells,
		Materials: cfg.MaterialMap(),
		Mesh:      cfg.Tally.Mesh,
		Tallies:   transport.NewTallySet(cfg.Tally, g),
		Eigen:     &tally.Eigen{},
		Diag:      &diag.Counters{},
		Technique: cfg.Technique,
		Settings:  cfg.Settings,
	}

	return &Simulation{Config: cfg, Comm: comm, Ctx: ctx}
}

// Run drives the configured cycle(s) to completion and populates
// Results. Matches gofem's FEM.Run() shape: a single blocking call
// that returns once every cycle has finished and tallies are closed
// out.
func (s *Simulation) Run() error {
	start := time.Now()
	cycle.Run(s.Ctx, s.Config, s.Comm, s.Config.Settings.SeedBase)
	s.Results = BuildResults(s.Ctx, time.Since(start))
	if s.Comm.Rank() == 0 {
		diag.Info("run complete: %d histories, %d cycles, runtime %s\n",
			s.Config.Settings.NHist, s.Config.Settings.NCycle, s.Results.Runtime)
	}
	s.Ctx.Diag.Report()
	return nil
}
