// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xmpi

import "github.com/cpmech/gosl/mpi"

// Gosl is a Comm backed by gosl/mpi, the same MPI binding gofem uses
// in fem/s_implicit.go ("mpi.AllReduceSum(d.Fb, d.Wb)" joining
// per-node contributions across ranks). gosl/mpi's AllReduceSum is an
// in-place vector reduction taking a destination buffer and a scratch
// work buffer of the same length, not a scalar-returning call; allreduceScalar
// below wraps a single float64 in one-element slices to get the scalar
// collective the transport core needs. Exscan/Bcast/ReduceMaster are
// then composed from that scalar primitive the way gofem composes a
// handful of MPI primitives rather than calling out to more exotic
// collectives. mpi.Start must be called by main before constructing a
// Gosl comm, and mpi.Stop on exit.
type Gosl struct{}

var _ Comm = Gosl{}

func (Gosl) Rank() int { return mpi.Rank() }
func (Gosl) Size() int { return mpi.Size() }

// allreduceScalar wraps gosl/mpi's in-place vector AllReduceSum(dest,
// workBuf []float64) to reduce a single float64 across ranks.
func allreduceScalar(x float64) float64 {
	dest := []float64{x}
	work := []float64{0}
	mpi.AllReduceSum(dest, work)
	return dest[0]
}

// Exscan is built from allreduceScalar applied to one-hot
// contributions: for each rank index r, only rank r contributes x and
// every other rank contributes 0, and each rank adds up the reduced
// values for indices below its own rank to get the exclusive prefix.
// This costs Size() scalar all-reduces but does not require gosl/mpi
// to expose an exscan primitive directly.
func (g Gosl) Exscan(x int64) int64 {
	size := g.Size()
	var prefix int64
	for r := 0; r < size; r++ {
		contribution := 0.0
		if r == g.Rank() {
			contribution = float64(x)
		}
		reduced := allreduceScalar(contribution)
		if r < g.Rank() {
			prefix += int64(reduced)
		}
	}
	return prefix
}

// Bcast broadcasts by reducing a value that is x on the root rank and
// 0 elsewhere: since exactly one rank contributes a non-zero value,
// the all-reduced sum equals that value on every rank.
func (g Gosl) Bcast(x float64, root int) float64 {
	v := 0.0
	if g.Rank() == root {
		v = x
	}
	return allreduceScalar(v)
}

func (Gosl) AllReduceSum(x float64) float64 {
	return allreduceScalar(x)
}

// ReduceMaster reduces to every rank (gosl/mpi exposes only the
// all-to-all form) and then masks the result off on non-root ranks,
// matching the "result only on rank 0" contract.
func (g Gosl) ReduceMaster(x float64) float64 {
	sum := allreduceScalar(x)
	if g.Rank() != 0 {
		return 0
	}
	return sum
}
