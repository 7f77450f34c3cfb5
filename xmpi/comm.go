// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xmpi specifies and implements the MPI contract the
// transport core relies on: the handful of synchronous collective
// operations it invokes (bank scanning, tally reduction, weight
// normalization). The contract is expressed as a Comm interface so a
// single-rank stub can stand in for a real MPI backend in property
// tests; Comm is grounded directly on the surface gosl/mpi exposes
// (IsOn, Rank, Size, Start, Stop, AllReduceSum) — the verbs needed
// beyond that (Exscan, Bcast, ReduceMaster) are composed from
// AllReduceSum the same way gofem composes its own MPI calls rather
// than reaching for more exotic collectives.
package xmpi

// Comm is the set of collective operations the transport core
// requires. All operations are synchronous, blocking, and collective
// over every rank.
type Comm interface {
	// Rank returns this process's rank in [0, Size()).
	Rank() int

	// Size returns the number of ranks.
	Size() int

	// Exscan returns the exclusive prefix sum of x across ranks: the
	// sum of x on ranks [0, Rank()).
	Exscan(x int64) int64

	// Bcast broadcasts x from the given root rank to every rank and
	// returns the broadcast value.
	Bcast(x float64, root int) float64

	// AllReduceSum returns the sum of x across all ranks, visible on
	// every rank.
	AllReduceSum(x float64) float64

	// ReduceMaster returns the sum of x across all ranks, valid only
	// on rank 0 (other ranks receive 0).
	ReduceMaster(x float64) float64
}

// WeightNormalizer scales every particle's weight so that the global
// weight sum equals N; it is expressed against the minimal interface
// a bank needs to satisfy (avoids an import cycle with package bank).
type WeightNormalizer interface {
	Size() int
	WeightAt(i int) float64
	SetWeightAt(i int, w float64)
}

// NormalizeWeight scales every particle's weight in bank b so the
// global (cross-rank) weight sum equals N. The local
// weight sum is combined via AllReduceSum; every rank then applies the
// same scale factor.
func NormalizeWeight(c Comm, b WeightNormalizer, n float64) {
	var localSum float64
	for i := 0; i < b.Size(); i++ {
		localSum += b.WeightAt(i)
	}
	globalSum := c.AllReduceSum(localSum)
	if globalSum == 0 {
		return
	}
	scale := n / globalSum
	for i := 0; i < b.Size(); i++ {
		b.SetWeightAt(i, b.WeightAt(i)*scale)
	}
}

// Scanning holds the result of ExclusiveScanSize: the exclusive prefix
// offset and the global total over the requested local count.
type Scanning struct {
	IdxStart   int64
	Global     int64
}

// ExclusiveScanSize computes (idx_start, N_global) for a local count
// nLocal: idx_start is the exclusive-scan prefix sum of nLocal across
// ranks, and N_global is the total across all ranks — implemented via
// Exscan plus a broadcast from the last rank.
func ExclusiveScanSize(c Comm, nLocal int64) Scanning {
	idxStart := c.Exscan(nLocal)
	// the last rank knows idxStart + nLocal == N_global; broadcast it
	var globalOnLast float64
	if c.Rank() == c.Size()-1 {
		globalOnLast = float64(idxStart + nLocal)
	}
	global := c.Bcast(globalOnLast, c.Size()-1)
	return Scanning{IdxStart: idxStart, Global: int64(global)}
}
