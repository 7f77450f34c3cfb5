// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cycle implements the outer cycle driver: the eigenvalue vs.
// fixed-source loop that runs the source loop once per
// cycle, updates k_eff/α_eff, manages inactive/active phase, runs
// population control between eigenvalue cycles, and finalizes tally
// statistics once the loop ends.
package cycle

import (
	"github.com/khurrumsaleem/mcdc-go/bank"
	"github.com/khurrumsaleem/mcdc-go/config"
	"github.com/khurrumsaleem/mcdc-go/pct"
	"github.com/khurrumsaleem/mcdc-go/rng"
	src "github.com/khurrumsaleem/mcdc-go/source"
	"github.com/khurrumsaleem/mcdc-go/transport"
	"github.com/khurrumsaleem/mcdc-go/xmpi"
)

// WorkSplit computes this rank's static slice of [0,nHist) work
// indices, distributing the remainder across the lowest-ranked ranks
//.
func WorkSplit(comm xmpi.Comm, nHist int) (start, size int) {
	n, r := comm.Size(), comm.Rank()
	base := nHist / n
	rem := nHist % n
	start = r*base + minInt(r, rem)
	size = base
	if r < rem {
		size++
	}
	return
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// cycleStream builds the per-rank, per-cycle RNG stream rebased at
// seed_base + (iCycle*nHistGlobal + workStart)*stride (
// extended across cycles: each cycle consumes its own disjoint region
// of the stride space so successive cycles are independent draws,
// while remaining bitwise reproducible regardless of rank count — only
// workStart and iCycle, never any locally-consumed draw count,
// determine where a rank's first history begins).
func cycleStream(seedBase, stride uint64, iCycle, workStart, nHistGlobal int) *rng.Stream {
	str := rng.New(seedBase, stride)
	str.SkipAheadStrides(uint64(iCycle*nHistGlobal + workStart))
	str.Rebase()
	return str
}

// Run drives the complete simulation: a single pass for fixed-source
// configurations, or the inactive/active eigenvalue loop for
// mode_eigenvalue configurations. ctx.KEff/ctx.AlphaEff are updated in
// place as cycles complete.
func Run(ctx *transport.Context, cfg *config.Config, comm xmpi.Comm, seedBase uint64) {
	ctx.EigenvalueMode = cfg.Settings.ModeEigenvalue
	ctx.AlphaMode = cfg.Settings.ModeAlpha
	if ctx.KEff == 0 {
		ctx.KEff = 1
	}

	workStart, workSize := WorkSplit(comm, cfg.Settings.NHist)

	bankCap := cfg.Settings.NHist*4 + 16
	b := src.Banks{
		Source:  bank.New("source", bankCap),
		Active:  bank.New("active", bankCap),
		History: bank.New("history", bankCap),
		Census:  bank.New("census", bankCap),
	}

	if !ctx.EigenvalueMode {
		str := cycleStream(seedBase, cfg.Settings.Stride, 0, workStart, cfg.Settings.NHist)
		runCycleSource(ctx, cfg, str, workSize, b)
		ctx.Tallies.CloseoutCycle(comm, float64(cfg.Settings.NHist))
		return
	}

	iCycle := 0
	cycleActive := cfg.Settings.NInactive == 0
	var activeHistories float64

	for {
		str := cycleStream(seedBase, cfg.Settings.Stride, iCycle, workStart, cfg.Settings.NHist)
		runCycleSource(ctx, cfg, str, workSize, b)

		ctx.Eigen.CloseoutCycle(comm, float64(cfg.Settings.NHist), ctx.AlphaMode)
		ctx.KEff = ctx.Eigen.KEff
		ctx.AlphaEff = ctx.Eigen.AlphaEff

		if cycleActive {
			ctx.Tallies.CloseoutHistory()
			activeHistories += float64(cfg.Settings.NHist)
		} else {
			ctx.Tallies.ResetBin()
		}

		manageBanks(ctx, comm, cfg, seedBase, iCycle, b)

		iCycle++
		if iCycle == cfg.Settings.NCycle {
			break
		}
		if iCycle >= cfg.Settings.NInactive {
			cycleActive = true
		}
	}

	if activeHistories == 0 {
		activeHistories = float64(cfg.Settings.NHist)
	}
	ctx.Tallies.CloseoutCycle(comm, activeHistories)
}

// runCycleSource drains this rank's work slice through the source
// loop. The first cycle (an empty source bank) samples workSize fresh
// particles ; every later eigenvalue cycle instead
// replays exactly the particles population control placed into the
// source bank, since combing's tooth count need not equal the static
// work split (tooth range depends on the census
// distribution, not a fixed per-rank quota).
func runCycleSource(ctx *transport.Context, cfg *config.Config, str *rng.Stream, workSize int, b src.Banks) {
	n := workSize
	if !b.Source.Empty() {
		n = b.Source.Size
	}
	for i := 0; i < n; i++ {
		src.RunWorkItem(ctx, cfg, str, i, b)
	}
}

// manageBanks implements "manage_particle_banks": the
// census bank is globally weight-normalized to the target history
// count and becomes the next cycle's source bank — combed down to the
// target population when Technique.PopulationControl is set, otherwise
// moved over unchanged — leaving the census bank empty.
//
// Combing's tooth offset must be drawn identically on every rank
//. Rather than rebasing the
// already-diverged per-rank work stream (each rank consumes a
// different number of draws per cycle), a dedicated stream keyed only
// by (seedBase, cycle index) gives every rank the same draw without
// needing a synchronization point.
func manageBanks(ctx *transport.Context, comm xmpi.Comm, cfg *config.Config, seedBase uint64, iCycle int, b src.Banks) {
	xmpi.NormalizeWeight(comm, bank.Weights{B: b.Census}, float64(cfg.Settings.NHist))

	if ctx.Technique.PopulationControl {
		pctStream := rng.New(seedBase, cfg.Settings.Stride)
		pctStream.SkipAheadStrides(uint64(iCycle))
		b.Source.Clear()
		pct.Comb(comm, b.Census, b.Source, cfg.Settings.NHist, pctStream)
	} else {
		b.Source.Clear()
		bank.Drain(b.Source, b.Census)
	}
}
