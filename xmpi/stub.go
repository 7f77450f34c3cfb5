// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xmpi

// SingleRank is the default, dependency-free Comm: one rank, so every
// collective is a local no-op identity. Property tests run against
// this stub instead of standing up a real multi-process MPI job.
type SingleRank struct{}

var _ Comm = SingleRank{}

func (SingleRank) Rank() int { return 0 }
func (SingleRank) Size() int { return 1 }

func (SingleRank) Exscan(x int64) int64 { return 0 }

func (SingleRank) Bcast(x float64, root int) float64 { return x }

func (SingleRank) AllReduceSum(x float64) float64 { return x }

func (SingleRank) ReduceMaster(x float64) float64 { return x }
