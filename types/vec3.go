// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types holds the small shared value types and control
// constants used across every transport package: the 3-vector used
// for position/direction, event tags, and the numeric sentinels
// (PRECISION, INF).
package types

import "math"

// Vec3 is a plain 3-component vector used for both position and
// direction. Kept as a concrete struct (not an interface or a
// gosl/la dense vector) since every use site needs exactly 3 ordered
// components and nothing more.
type Vec3 struct {
	X, Y, Z float64
}

// Dot returns the dot product u . v.
func (u Vec3) Dot(v Vec3) float64 {
	return u.X*v.X + u.Y*v.Y + u.Z*v.Z
}

// Add returns u + v.
func (u Vec3) Add(v Vec3) Vec3 {
	return Vec3{u.X + v.X, u.Y + v.Y, u.Z + v.Z}
}

// Scale returns u * s.
func (u Vec3) Scale(s float64) Vec3 {
	return Vec3{u.X * s, u.Y * s, u.Z * s}
}

// Sub returns u - v.
func (u Vec3) Sub(v Vec3) Vec3 {
	return Vec3{u.X - v.X, u.Y - v.Y, u.Z - v.Z}
}

// Norm returns the Euclidean length of u.
func (u Vec3) Norm() float64 {
	return math.Sqrt(u.Dot(u))
}

// Normalized returns u scaled to unit length. Panics-free: a
// zero-length vector is returned unchanged, since callers (surface
// gradients at non-singular points) are expected to never hit it.
func (u Vec3) Normalized() Vec3 {
	n := u.Norm()
	if n == 0 {
		return u
	}
	return u.Scale(1 / n)
}

// Precision is the small positional nudge used to guarantee surface
// crossing after a move.
const Precision = 1e-9

// Inf is the sentinel for an impossible/unreachable distance.
const Inf = math.MaxFloat64
