// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bank

import "github.com/cpmech/gosl/chk"

// Bank is a fixed-capacity, preallocated LIFO buffer of particles.
// Banks never grow during a cycle; Push beyond
// capacity and Pop from empty are both fatal.
type Bank struct {
	Name     string
	Particles []Particle
	Size     int
}

// New allocates a bank with the given fixed capacity.
func New(name string, capacity int) *Bank {
	return &Bank{Name: name, Particles: make([]Particle, capacity)}
}

// Cap returns the bank's fixed capacity.
func (b *Bank) Cap() int { return len(b.Particles) }

// Push appends p to the bank. Fatal if the bank is already full.
func (b *Bank) Push(p Particle) {
	if b.Size >= len(b.Particles) {
		chk.Panic("bank %q: push onto full bank (capacity %d)", b.Name, len(b.Particles))
	}
	b.Particles[b.Size] = p
	b.Size++
}

// Pop removes and returns the most recently pushed particle. Fatal if
// the bank is empty.
func (b *Bank) Pop() Particle {
	if b.Size <= 0 {
		chk.Panic("bank %q: pop from empty bank", b.Name)
	}
	b.Size--
	return b.Particles[b.Size]
}

// Empty reports whether the bank currently holds no particles.
func (b *Bank) Empty() bool { return b.Size == 0 }

// Clear resets the bank to empty without reallocating.
func (b *Bank) Clear() { b.Size = 0 }

// At returns the i-th particle currently in the bank (0-indexed from
// the bottom), used by population control and weight normalization to
// iterate without popping.
func (b *Bank) At(i int) *Particle { return &b.Particles[i] }

// Drain moves all particles from src into dst via Push, then clears
// src. Used by the source loop to merge the history bank into the
// active bank.
func Drain(dst, src *Bank) {
	for i := 0; i < src.Size; i++ {
		dst.Push(src.Particles[i])
	}
	src.Clear()
}

// TotalWeight returns the sum of particle weights currently held.
func (b *Bank) TotalWeight() float64 {
	var w float64
	for i := 0; i < b.Size; i++ {
		w += b.Particles[i].Weight
	}
	return w
}

// Weights adapts b to the minimal Size/WeightAt/SetWeightAt shape
// xmpi.NormalizeWeight expects. A separate type is needed because
// Bank already has a Size field, not a Size() method.
type Weights struct{ B *Bank }

func (v Weights) Size() int                  { return v.B.Size }
func (v Weights) WeightAt(i int) float64      { return v.B.Particles[i].Weight }
func (v Weights) SetWeightAt(i int, w float64) { v.B.Particles[i].Weight = w }
