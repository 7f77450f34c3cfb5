// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rng implements the reproducible random-number stream used to
// drive particle histories: a multiplicative linear-congruential
// generator on a power-of-two modulus, with O(log n) skip-ahead by an
// arbitrary stride so that any history can be replayed independent of
// rank count or thread interleaving.
package rng

import "github.com/cpmech/gosl/chk"

// default LCG parameters (same family used by several Monte Carlo
// transport codes: 2^63 modulus, odd multiplier, odd increment)
const (
	DefaultG = 2806196910506780709
	DefaultC = 1
	DefaultM = 1 << 63
)

// Stream is a stride-addressable LCG stream.
//
//	Seed     -- current state
//	SeedBase -- rebase point; strides are measured from here
//	G, C, M  -- LCG parameters: seed <- (G*seed + C) mod M
//	Stride   -- number of draws reserved per history
type Stream struct {
	Seed     uint64
	SeedBase uint64
	G        uint64
	C        uint64
	M        uint64
	Stride   uint64
}

// New returns a stream with the default MCDC-style LCG parameters and
// the given initial seed and stride.
func New(seed, stride uint64) *Stream {
	o := &Stream{
		Seed:     seed,
		SeedBase: seed,
		G:        DefaultG,
		C:        DefaultC,
		M:        DefaultM,
		Stride:   stride,
	}
	o.checkModulus()
	return o
}

// checkModulus panics if M is not a power of two; this is a fatal
// configuration error (: "RNG modulus not a power of two").
func (o *Stream) checkModulus() {
	if o.M == 0 || (o.M&(o.M-1)) != 0 {
		chk.Panic("rng: modulus %d is not a power of two", o.M)
	}
}

// Draw advances the stream by one step and returns a uniform sample in
// [0,1).
func (o *Stream) Draw() float64 {
	o.Seed = (o.G*o.Seed + o.C) & (o.M - 1)
	return float64(o.Seed) / float64(o.M)
}

// powmod computes (g^n, c*(g^n-1)/(g-1)) mod m via the standard LCG
// skip-ahead squaring recurrence, reducing n bit by bit. Division by
// (g-1) is avoided; instead the c-term is accumulated alongside the
// g-term using the identity
//
//	G_new = G*G
//	C_new = C*(G+1)
//
// applied once per squaring, and composed with the "advance by one
// step" increment whenever the current bit of n is set:
//
//	G_step = g, C_step = c
//	(G_acc, C_acc) = (G_acc*G_step, C_acc*G_step + C_step) when bit set
//
// all modulo m (m is a power of two, so the multiplications wrap
// naturally in uint64 arithmetic when m == 1<<63 or smaller).
func powmod(g, c, m uint64, n uint64) (gn, cn uint64) {
	gn, cn = 1, 0
	gStep, cStep := g, c
	mask := m - 1
	for n > 0 {
		if n&1 == 1 {
			gn = (gn * gStep) & mask
			cn = (cn*gStep + cStep) & mask
		}
		cStep = (cStep * (gStep + 1)) & mask
		gStep = (gStep * gStep) & mask
		n >>= 1
	}
	return
}

// SkipAhead advances the stream by n draws in O(log n), without
// actually performing n individual draws.
func (o *Stream) SkipAhead(n uint64) {
	gn, cn := powmod(o.G, o.C, o.M, n)
	o.Seed = (gn*o.Seed + cn) & (o.M - 1)
}

// SkipAheadStrides advances the stream by k strides, i.e.
// SkipAhead(k*Stride).
func (o *Stream) SkipAheadStrides(k uint64) {
	o.SkipAhead(k * o.Stride)
}

// Rebase copies the current seed into SeedBase so that subsequent
// skips are measured from here.
func (o *Stream) Rebase() {
	o.SeedBase = o.Seed
}

// SeedFromBase resets Seed to SeedBase, discarding any draws made
// since the last Rebase. Used by the source loop to restart a
// history's stream at a rebased point before skipping to its index.
func (o *Stream) SeedFromBase() {
	o.Seed = o.SeedBase
}

// Clone returns an independent copy of the stream; draws on the copy
// do not advance the original.
func (o *Stream) Clone() *Stream {
	c := *o
	return &c
}
