// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source implements the source loop: per-rank RNG rebasing,
// per-work-index seeding, initial particle sampling from
// the registered source distribution, and draining the active bank
// through the transport event dispatcher until every history in this
// rank's slice of work is complete.
package source

import (
	"math"

	"github.com/khurrumsaleem/mcdc-go/bank"
	"github.com/khurrumsaleem/mcdc-go/config"
	"github.com/khurrumsaleem/mcdc-go/geom"
	"github.com/khurrumsaleem/mcdc-go/mesh"
	"github.com/khurrumsaleem/mcdc-go/rng"
	"github.com/khurrumsaleem/mcdc-go/transport"
)

// Banks bundles the four fixed-capacity buffers a source loop needs
//: Source feeds the current cycle, Active holds
// in-flight secondaries for the history currently being processed,
// History accumulates secondaries produced by that history before
// being drained into Active, and Census accumulates fission
// secondaries for the next eigenvalue cycle.
type Banks struct {
	Source  *bank.Bank
	Active  *bank.Bank
	History *bank.Bank
	Census  *bank.Bank
}

// sampleSource draws a fresh particle from the registered source
// distribution: cumulative probability over sources, uniform position
// within a source's box (or its fixed point), isotropic or fixed
// direction, discrete group, uniform time within [T0,T1].
func sampleSource(sources []*config.SourceSpec, str *rng.Stream, speeds []float64) bank.Particle {
	total := 0.0
	for _, s := range sources {
		total += s.Probability
	}
	xi := str.Draw() * total
	var cum float64
	chosen := sources[len(sources)-1]
	for _, s := range sources {
		cum += s.Probability
		if xi < cum {
			chosen = s
			break
		}
	}

	var p bank.Particle
	if chosen.Box {
		p.X = chosen.BoxLo[0] + str.Draw()*(chosen.BoxHi[0]-chosen.BoxLo[0])
		p.Y = chosen.BoxLo[1] + str.Draw()*(chosen.BoxHi[1]-chosen.BoxLo[1])
		p.Z = chosen.BoxLo[2] + str.Draw()*(chosen.BoxHi[2]-chosen.BoxLo[2])
	} else {
		p.X, p.Y, p.Z = chosen.Position[0], chosen.Position[1], chosen.Position[2]
	}

	if chosen.Isotropic {
		mu := 2*str.Draw() - 1
		phi := 2 * math.Pi * str.Draw()
		sinTheta := math.Sqrt(math.Max(0, 1-mu*mu))
		p.Ux = sinTheta * math.Cos(phi)
		p.Uy = sinTheta * math.Sin(phi)
		p.Uz = mu
	} else {
		p.Ux, p.Uy, p.Uz = chosen.Direction[0], chosen.Direction[1], chosen.Direction[2]
	}

	p.Group = sampleGroup(chosen.GroupProb, str)
	if p.Group < len(speeds) {
		p.Speed = speeds[p.Group]
	}
	p.Time = chosen.T0 + str.Draw()*(chosen.T1-chosen.T0)
	p.Weight = 1
	p.Alive = true
	return p
}

func sampleGroup(probs []float64, str *rng.Stream) int {
	var total float64
	for _, p := range probs {
		total += p
	}
	if total <= 0 {
		return 0
	}
	xi := str.Draw() * total
	var cum float64
	for i, p := range probs {
		cum += p
		if xi < cum {
			return i
		}
	}
	return len(probs) - 1
}

// RunWorkItem processes exactly one work index : seed the
// stream at stride·i from the rebased base, obtain the initial
// particle (from the source bank if non-empty, otherwise freshly
// sampled), locate its starting cell, push it onto the active bank,
// then drain active through the event dispatcher — merging any
// secondaries the dispatcher pushes into historyBank back into active
// between particles — until active is empty. In fixed-source mode,
// tallies are closed out once this whole history is done; in
// eigenvalue mode closeout happens once per cycle instead.
func RunWorkItem(ctx *transport.Context, cfg *config.Config, str *rng.Stream, i int, b Banks) {
	str.SeedFromBase()
	str.SkipAheadStrides(uint64(i))

	var p bank.Particle
	if !b.Source.Empty() {
		p = b.Source.At(i).Clone()
	} else {
		p = sampleSource(cfg.Sources, str, materialSpeeds(cfg))
	}

	cellID, ok := geom.SetCell(ctx.Cells, ctx.Surfaces, p.Position())
	if !ok {
		ctx.Diag.LostParticle(false, -1)
		return
	}
	p.CellID = cellID
	b.Active.Push(p)

	for !b.Active.Empty() {
		cur := b.Active.Pop()
		applyWeightWindow(ctx, &cur, str, b.Active)
		for cur.Alive {
			ctx.Advance(&cur, str, b.History, b.Census)
		}
		bank.Drain(b.Active, b.History)
	}

	if !ctx.EigenvalueMode {
		ctx.Tallies.CloseoutHistory()
	}
}

// materialSpeeds returns the first per-group speed table found among
// the configured materials, valid whenever every material shares a
// common group structure (: speed is a per-group material
// field, needed to stamp a freshly sampled particle before its
// starting cell/material is known).
func materialSpeeds(cfg *config.Config) []float64 {
	for _, m := range cfg.Materials {
		if len(m.Speed) > 0 {
			return m.Speed
		}
	}
	return nil
}

// applyWeightWindow applies weight-window splitting against the
// configured target at the particle's current mesh bin. Splitting
// pushes extra clones directly onto the active bank so they continue
// the same history. Particles at or below target keep their weight
// unchanged; no Russian-roulette kill is performed.
func applyWeightWindow(ctx *transport.Context, p *bank.Particle, str *rng.Stream, active *bank.Bank) {
	ww := ctx.Technique.WeightWindow
	if !ww.Enabled || ww.Mesh == nil || len(ww.Target) == 0 {
		return
	}
	target := weightWindowTarget(ww, p)
	if target <= 0 || p.Weight <= target {
		return
	}
	n := int(p.Weight / target)
	if n < 1 {
		n = 1
	}
	p.Weight /= float64(n)
	for k := 1; k < n; k++ {
		active.Push(p.Clone())
	}
}

// weightWindowTarget flattens the particle's (t,x,y,z) mesh bin into
// the weight-window target array, the same row-major convention
// tally.Tally uses for its (g,t,x,y,z[,component]) index.
func weightWindowTarget(ww config.WeightWindow, p *bank.Particle) float64 {
	idx := ww.Mesh.Locate(p.Time, p.X, p.Y, p.Z)
	tn, xn, yn, zn := dimsOf(ww.Mesh)
	if idx.T < 0 || idx.T >= tn || idx.X < 0 || idx.X >= xn ||
		idx.Y < 0 || idx.Y >= yn || idx.Z < 0 || idx.Z >= zn {
		return 0
	}
	flat := ((idx.T*xn+idx.X)*yn+idx.Y)*zn + idx.Z
	if flat < 0 || flat >= len(ww.Target) {
		return 0
	}
	return ww.Target[flat]
}

func dimsOf(m *mesh.Mesh) (tn, xn, yn, zn int) {
	return len(m.T) - 1, len(m.X) - 1, len(m.Y) - 1, len(m.Z) - 1
}
