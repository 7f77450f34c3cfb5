// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pct implements the population-control stage: the combing
// algorithm (PCT_CO) that rebalances a global census bank
// of N particles down to (or up to) a target population M between
// eigenvalue cycles, preserving total weight.
package pct

import (
	"math"

	"github.com/khurrumsaleem/mcdc-go/bank"
	"github.com/khurrumsaleem/mcdc-go/rng"
	"github.com/khurrumsaleem/mcdc-go/xmpi"
)

// Comb runs the combing algorithm over this rank's slice of the
// global census bank, appending surviving copies to dest and then
// clearing census. target is the desired global population M. str
// must be in the same state on every rank so every rank agrees on the
// same offset draw.
func Comb(comm xmpi.Comm, census, dest *bank.Bank, target int, str *rng.Stream) {
	nLocal := int64(census.Size)
	scan := xmpi.ExclusiveScanSize(comm, nLocal)
	idxStart, nGlobal := scan.IdxStart, scan.Global
	if nGlobal == 0 || target <= 0 {
		census.Clear()
		return
	}

	td := float64(nGlobal) / float64(target)
	xi := str.Draw()
	offset := xi * td

	toothStart := int64(math.Ceil((float64(idxStart) - offset) / td))
	toothEnd := int64(math.Floor((float64(idxStart+nLocal)-offset)/td)) + 1

	for tooth := toothStart; tooth < toothEnd; tooth++ {
		globalIdx := int64(math.Floor(float64(tooth)*td + offset))
		localIdx := globalIdx - idxStart
		if localIdx < 0 || localIdx >= nLocal {
			continue
		}
		p := census.At(int(localIdx)).Clone()
		p.Weight *= td
		dest.Push(p)
	}

	census.Clear()
}
