// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"math"

	"github.com/khurrumsaleem/mcdc-go/bank"
	"github.com/khurrumsaleem/mcdc-go/material"
	"github.com/khurrumsaleem/mcdc-go/rng"
)

// sampleDiscrete draws an outgoing index from a discrete probability
// vector (not necessarily normalized), matching the cumulative
// comparison used throughout the collision sampler (outgoing group,
// prompt vs. delayed classification, collision type selection).
func sampleDiscrete(probs []float64, str *rng.Stream) int {
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

// emissionWeights returns (w_eff, w_new) for a particle of weight w
// : weighted_emission moves the parent's weight into the
// secondary count (w_eff=w, w_new=1); otherwise each clone inherits
// the parent's weight directly (w_eff=1, w_new=w).
func emissionWeights(weightedEmission bool, w float64) (wEff, wNew float64) {
	if weightedEmission {
		return w, 1
	}
	return 1, w
}

// sampleCollision implements the collision-type selection and
// dispatch: cumulative order scatter, fission, capture,
// (time-reaction in α-mode); with implicit capture enabled, the
// capture/time-absorption cross sections are folded into a weight
// reduction instead of a stochastic kill, and only scatter/fission are
// sampled. The incoming particle is always consumed at the end of
// collision processing;
// any secondaries are fresh bank entries.
func (ctx *Context) sampleCollision(p *bank.Particle, str *rng.Stream, historyBank, censusBank *bank.Bank) {
	cell := ctx.CellByID(p.CellID)
	if cell == nil {
		ctx.Diag.LostParticle(false, p.CellID)
		p.Alive = false
		return
	}
	mat := ctx.Materials[cell.MaterialID]
	g := p.Group

	sigmaS := mat.Scatter[g]
	sigmaF := mat.Fission[g]
	sigmaC := mat.Capture[g]
	var sigmaAlpha float64
	if ctx.AlphaMode {
		sigmaAlpha = math.Abs(ctx.AlphaEff) / p.Speed
	}
	sigmaT := sigmaS + sigmaF + sigmaC + sigmaAlpha

	if sigmaT == 0 {
		p.Alive = false
		return
	}

	if ctx.Technique.ImplicitCapture {
		p.Weight *= (sigmaT - sigmaC - sigmaAlpha) / sigmaT
		scatterFission := sigmaS + sigmaF
		xi := str.Draw() * scatterFission
		if xi < sigmaS {
			ctx.sampleScattering(p, mat, str, historyBank)
		} else {
			ctx.sampleFission(p, mat, str, historyBank, censusBank)
		}
		p.Alive = false
		return
	}

	xi := str.Draw() * sigmaT
	switch {
	case xi < sigmaS:
		ctx.sampleScattering(p, mat, str, historyBank)
	case xi < sigmaS+sigmaF:
		ctx.sampleFission(p, mat, str, historyBank, censusBank)
	case xi < sigmaS+sigmaF+sigmaC:
		// capture: no further effect
	default:
		ctx.sampleTimeReaction(p, historyBank)
	}
	p.Alive = false
}

// sampleScattering implements scattering: N = floor(w_eff
// * nu_s + xi) outgoing clones, each with an independently sampled
// outgoing group (from ScatterChi[g]) and an isotropic-in-lab-frame
// direction built by rotating the incoming direction.
func (ctx *Context) sampleScattering(p *bank.Particle, mat *material.Material, str *rng.Stream, historyBank *bank.Bank) {
	wEff, wNew := emissionWeights(ctx.Technique.WeightedEmission, p.Weight)
	n := int(math.Floor(wEff*mat.NuS[p.Group] + str.Draw()))

	u := p.Direction()
	for i := 0; i < n; i++ {
		clone := p.Clone()
		clone.Group = sampleDiscrete(mat.ScatterChi[p.Group], str)
		clone.SetDirection(sampleScatterDirection(u, str))
		clone.Weight = wNew
		historyBank.Push(clone)
	}
}

// sampleFission implements fission: N = floor(w_eff*nu/
// k_eff + xi) outgoing neutrons, each classified prompt vs. delayed by
// cumulative comparison against the total multiplicity, with prompt
// neutrons inheriting the collision time and delayed neutrons drawing
// an exponential decay time (dropped if it exceeds the time
// boundary). In eigenvalue mode, secondaries go to the census bank for
// the next cycle; in fixed-source mode, they continue this history via
// the history bank.
func (ctx *Context) sampleFission(p *bank.Particle, mat *material.Material, str *rng.Stream, historyBank, censusBank *bank.Bank) {
	nu := mat.NuTotal(p.Group)
	if nu <= 0 {
		return
	}
	kEff := ctx.KEff
	if kEff <= 0 {
		kEff = 1
	}
	wEff, wNew := emissionWeights(ctx.Technique.WeightedEmission, p.Weight)
	n := int(math.Floor(wEff*nu/kEff + str.Draw()))

	nuP := mat.NuP[p.Group]
	dest := historyBank
	if ctx.EigenvalueMode {
		dest = censusBank
	}

	for i := 0; i < n; i++ {
		xi := str.Draw() * nu
		if xi < nuP {
			clone := p.Clone()
			clone.Group = sampleDiscrete(mat.FissionChiPrompt[p.Group], str)
			clone.SetDirection(isotropicDirection(str))
			clone.Weight = wNew
			dest.Push(clone)
			continue
		}

		cum := nuP
		j := mat.NumDelayedGroups() - 1
		for jj := 0; jj < mat.NumDelayedGroups(); jj++ {
			cum += mat.NuDelayed[p.Group][jj]
			if xi < cum {
				j = jj
				break
			}
		}

		lambda := mat.DecayConstant[j]
		dt := sampleDelay(lambda, str)
		if p.Time+dt > ctx.Settings.TimeBoundary {
			ctx.Diag.DelayedNeutronDropped()
			continue
		}
		clone := p.Clone()
		clone.Time = p.Time + dt
		clone.Group = sampleDiscrete(mat.FissionChiDelayed[j], str)
		clone.SetDirection(isotropicDirection(str))
		clone.Weight = wNew
		dest.Push(clone)
	}
}

// sampleDelay draws the delayed-neutron emission delay -ln(xi)/lambda,
// guarding against a non-positive decay constant (treated as an
// immediate emission rather than a divide-by-zero; Material.Validate
// checks array shapes only, not decay constant values).
func sampleDelay(lambda float64, str *rng.Stream) float64 {
	if lambda <= 0 {
		return 0
	}
	xi := str.Draw()
	for xi == 0 {
		xi = str.Draw()
	}
	return -math.Log(xi) / lambda
}

// sampleTimeReaction implements the time-reaction pseudo-event: in
// α-mode with negative α_eff, creates one copy in the history bank (the
// time-absorption pseudo-reaction represents a net particle source
// when α_eff<0); otherwise it has no further effect, matching capture.
func (ctx *Context) sampleTimeReaction(p *bank.Particle, historyBank *bank.Bank) {
	if ctx.AlphaMode && ctx.AlphaEff < 0 {
		historyBank.Push(p.Clone())
	}
}
