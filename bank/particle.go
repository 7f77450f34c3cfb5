// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bank implements the particle record and the bounded,
// preallocated bank buffers (source/active/history/census) that own
// particles for the duration of a history or cycle. Particle is a
// plain record with named fields, not a structured-array-by-string-key
// layout.
package bank

import "github.com/khurrumsaleem/mcdc-go/types"

// Particle is the complete state of one tracked neutron.
type Particle struct {
	X, Y, Z    float64 // position
	Ux, Uy, Uz float64 // unit direction
	Group      int     // energy group index
	Time       float64
	Speed      float64
	Weight     float64
	Alive      bool

	CellID        int
	LastSurfaceID int

	Event types.Event // pending/last classified event
}

// Position returns the particle's position as a Vec3.
func (p *Particle) Position() types.Vec3 { return types.Vec3{X: p.X, Y: p.Y, Z: p.Z} }

// Direction returns the particle's direction as a Vec3.
func (p *Particle) Direction() types.Vec3 { return types.Vec3{X: p.Ux, Y: p.Uy, Z: p.Uz} }

// SetPosition writes v back into the position fields.
func (p *Particle) SetPosition(v types.Vec3) { p.X, p.Y, p.Z = v.X, v.Y, v.Z }

// SetDirection writes v back into the direction fields.
func (p *Particle) SetDirection(v types.Vec3) { p.Ux, p.Uy, p.Uz = v.X, v.Y, v.Z }

// DirectionNormSq returns ux²+uy²+uz² — should be 1 within tolerance
// for any alive particle ( invariant); exposed for property
// tests rather than asserted on every mutation, since re-normalizing
// direction is itself part of the scattering/reflection kernels.
func (p *Particle) DirectionNormSq() float64 {
	return p.Ux*p.Ux + p.Uy*p.Uy + p.Uz*p.Uz
}

// Clone returns a copy of p (used when a reaction produces secondaries
// that inherit the parent's position/time/etc.).
func (p *Particle) Clone() Particle {
	return *p
}
