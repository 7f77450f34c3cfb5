// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tally

import "github.com/khurrumsaleem/mcdc-go/xmpi"

// Eigen accumulates the running ΣνΣ_F·w·d and (α-mode only) Σw·d/v
// quantities scored during tracklength scoring, and derives k_eff /
// α_eff at cycle close.
type Eigen struct {
	NuSigmaF   float64 // running ΣνΣ_F·w·d, this cycle, this rank
	InverseSpeed float64 // running Σw·d/v, this cycle, this rank (α-mode only)

	KEff   float64
	AlphaEff float64

	KEffIterates   []float64
	AlphaEffIterates []float64
}

// ScoreNuSigmaF accumulates one tracklength segment's contribution to
// ΣνΣ_F.
func (e *Eigen) ScoreNuSigmaF(nuSigmaF, w, d float64) {
	e.NuSigmaF += nuSigmaF * w * d
}

// ScoreInverseSpeed accumulates one tracklength segment's contribution
// to Σ(1/v), used only in α-mode.
func (e *Eigen) ScoreInverseSpeed(w, d, v float64) {
	e.InverseSpeed += w * d / v
}

// CloseoutCycle all-reduces the running sums across ranks, computes
// k_eff = ΣνΣ_F / N_hist, updates α_eff when alphaMode is set, records
// both in the iterate histories, and resets the running sums for the
// next cycle.
func (e *Eigen) CloseoutCycle(comm xmpi.Comm, nHist float64, alphaMode bool) {
	nuSigmaF := comm.AllReduceSum(e.NuSigmaF)
	e.KEff = nuSigmaF / nHist
	e.KEffIterates = append(e.KEffIterates, e.KEff)

	if alphaMode {
		invSpeed := comm.AllReduceSum(e.InverseSpeed)
		if invSpeed != 0 {
			e.AlphaEff += (e.KEff - 1) / invSpeed
		}
		e.AlphaEffIterates = append(e.AlphaEffIterates, e.AlphaEff)
	}

	e.NuSigmaF = 0
	e.InverseSpeed = 0
}
