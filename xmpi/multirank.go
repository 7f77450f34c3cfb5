// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xmpi

// ScanAll is a pure, sequential reference implementation of the
// Exscan+Bcast pattern applied to every rank's local count at once. It
// exists so property tests can check
// that running the transport core with R=1 and R=4 simulated ranks on
// the same input produces the same prefix/global bookkeeping as the
// collective-based Comm, without standing up a real multi-process MPI
// job. It is not a Comm implementation — it computes what every rank's
// ExclusiveScanSize call would have returned, all at once.
func ScanAll(locals []int64) (idxStart []int64, global int64) {
	idxStart = make([]int64, len(locals))
	var running int64
	for i, n := range locals {
		idxStart[i] = running
		running += n
	}
	return idxStart, running
}

// RankComm adapts one rank out of a fixed set of known per-rank local
// contributions into a Comm, using ScanAll/plain summation for the
// Exscan/AllReduce/Bcast semantics. It is a test-only harness for
// exercising multi-rank code paths (population control, tally
// reduction) deterministically within a single process.
type RankComm struct {
	MyRank  int
	Locals  []int64   // per-rank local counts, indexed by rank
	LocalsF []float64 // per-rank local float values, indexed by rank
}

var _ Comm = (*RankComm)(nil)

func (c *RankComm) Rank() int { return c.MyRank }
func (c *RankComm) Size() int { return len(c.Locals) }

func (c *RankComm) Exscan(x int64) int64 {
	idx, _ := ScanAll(c.Locals)
	return idx[c.MyRank]
}

func (c *RankComm) Bcast(x float64, root int) float64 {
	if root == c.MyRank {
		return x
	}
	// the broadcast value is whatever the root rank would have computed;
	// RankComm is only used in the ExclusiveScanSize pattern, where the
	// root's value is the running total of Locals, so recompute it here
	// rather than requiring the caller to thread it through.
	_, global := ScanAll(c.Locals)
	return float64(global)
}

func (c *RankComm) AllReduceSum(x float64) float64 {
	var sum float64
	for _, v := range c.LocalsF {
		sum += v
	}
	return sum
}

func (c *RankComm) ReduceMaster(x float64) float64 {
	if c.MyRank != 0 {
		return 0
	}
	return c.AllReduceSum(x)
}
