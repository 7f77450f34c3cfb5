// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simulation

import (
	"time"

	"github.com/khurrumsaleem/mcdc-go/tally"
	"github.com/khurrumsaleem/mcdc-go/transport"
)

// TallyResult holds one enabled score's final mean/sdev snapshots,
// indexed [i_cycle][...] exactly as tally.Tally.Mean/Sdev store them:
// mean/sdev per enabled score, indexed by i_cycle,g,t,x,y,z,(component),
// flattened here the same way tally.Tally flattens its Bin/Sum arrays.
type TallyResult struct {
	Name string
	Mean [][]float64
	Sdev [][]float64
}

// Results is the complete outcome of a Run: tally mean/sdev per
// enabled score, k_eff/α_eff iterate arrays, and wall-clock runtime.
// Persistence (HDF5 or otherwise) is out of scope; Results only needs
// to be consumable by a ResultSink.
type Results struct {
	Tallies []TallyResult

	KEffIterates     []float64
	AlphaEffIterates []float64

	Runtime time.Duration
}

// ResultSink is the out-of-scope external output layer's contract:
// HDF5 result output is an external collaborator's responsibility, and
// this interface is the seam it attaches through; anything
// that can accept a finished Results record.
type ResultSink interface {
	Write(Results) error
}

// BuildResults collects every enabled tally's final snapshots plus the
// eigenvalue iterate histories into a Results record.
func BuildResults(ctx *transport.Context, runtime time.Duration) Results {
	var tallies []TallyResult
	add := func(name string, t *tally.Tally) {
		if t == nil {
			return
		}
		tallies = append(tallies, TallyResult{Name: name, Mean: t.Mean, Sdev: t.Sdev})
	}
	add("tracklength_flux", ctx.Tallies.TracklengthFlux)
	add("crossing_x_flux", ctx.Tallies.CrossingX)
	add("crossing_t_flux", ctx.Tallies.CrossingT)
	add("current", ctx.Tallies.Current)
	add("eddington", ctx.Tallies.Eddington)

	return Results{
		Tallies:          tallies,
		KEffIterates:     append([]float64(nil), ctx.Eigen.KEffIterates...),
		AlphaEffIterates: append([]float64(nil), ctx.Eigen.AlphaEffIterates...),
		Runtime:          runtime,
	}
}
