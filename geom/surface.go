// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the quadric-surface geometry engine: surface
// evaluation, normals, distance-to-intersection, boundary-condition
// application, and cell membership. It is kept independent of the
// event dispatcher and reaction sampler, the way gofem's shp package
// evaluates shape functions without knowing about the FEM solver that
// consumes them.
package geom

import (
	"math"

	"github.com/khurrumsaleem/mcdc-go/types"
)

// Surface is a quadric {(x,y,z) : Ax²+By²+Cz²+Dxy+Exz+Fyz+Gx+Hy+Iz+J=0}.
// A linear surface (A=B=C=D=E=F=0) caches a unit normal so Normal
// never needs to recompute a gradient for planes, which dominate most
// geometries.
type Surface struct {
	ID     int
	A, B, C, D, E, F, G, H, I, J float64

	Linear     bool
	Vacuum     bool
	Reflective bool

	// cached for linear surfaces only
	Nx, Ny, Nz float64
}

// NewLinear builds a planar surface Gx+Hy+Iz+J=0 and caches its unit
// normal.
func NewLinear(id int, g, h, i, j float64, vacuum, reflective bool) *Surface {
	s := &Surface{ID: id, G: g, H: h, I: i, J: j, Linear: true, Vacuum: vacuum, Reflective: reflective}
	n := types.Vec3{X: g, Y: h, Z: i}.Normalized()
	s.Nx, s.Ny, s.Nz = n.X, n.Y, n.Z
	return s
}

// NewQuadric builds a general quadric surface.
func NewQuadric(id int, a, b, c, d, e, f, g, h, i, j float64, vacuum, reflective bool) *Surface {
	return &Surface{ID: id, A: a, B: b, C: c, D: d, E: e, F: f, G: g, H: h, I: i, J: j, Vacuum: vacuum, Reflective: reflective}
}

// Evaluate returns the surface function at point p: negative on one
// side, zero on the surface, positive on the other.
func (s *Surface) Evaluate(p types.Vec3) float64 {
	v := s.G*p.X + s.H*p.Y + s.I*p.Z + s.J
	if s.Linear {
		return v
	}
	return v + s.A*p.X*p.X + s.B*p.Y*p.Y + s.C*p.Z*p.Z + s.D*p.X*p.Y + s.E*p.X*p.Z + s.F*p.Y*p.Z
}

// Normal returns the outward-pointing unit normal at p. For linear
// surfaces this is the cached normal; for quadrics it is the analytic
// gradient, normalized.
func (s *Surface) Normal(p types.Vec3) types.Vec3 {
	if s.Linear {
		return types.Vec3{X: s.Nx, Y: s.Ny, Z: s.Nz}
	}
	g := types.Vec3{
		X: 2*s.A*p.X + s.D*p.Y + s.E*p.Z + s.G,
		Y: 2*s.B*p.Y + s.D*p.X + s.F*p.Z + s.H,
		Z: 2*s.C*p.Z + s.E*p.X + s.F*p.Y + s.I,
	}
	return g.Normalized()
}

// Distance returns the smallest non-negative distance along direction
// u from point p to this surface, or types.Inf if there is none.
func (s *Surface) Distance(p, u types.Vec3) float64 {
	if s.Linear {
		denom := s.G*u.X + s.H*u.Y + s.I*u.Z
		if denom == 0 {
			return types.Inf
		}
		d := -s.Evaluate(p) / denom
		if d < 0 {
			return types.Inf
		}
		return d
	}

	a := s.A*u.X*u.X + s.B*u.Y*u.Y + s.C*u.Z*u.Z + s.D*u.X*u.Y + s.E*u.X*u.Z + s.F*u.Y*u.Z
	b := 2*s.A*p.X*u.X + 2*s.B*p.Y*u.Y + 2*s.C*p.Z*u.Z +
		s.D*(p.X*u.Y+p.Y*u.X) + s.E*(p.X*u.Z+p.Z*u.X) + s.F*(p.Y*u.Z+p.Z*u.Y) +
		s.G*u.X + s.H*u.Y + s.I*u.Z
	c := s.Evaluate(p)

	if a == 0 {
		// degenerates to a linear equation b*d + c = 0
		if b == 0 {
			return types.Inf
		}
		d := -c / b
		if d < 0 {
			return types.Inf
		}
		return d
	}

	disc := b*b - 4*a*c
	if disc <= 0 {
		return types.Inf
	}
	sq := math.Sqrt(disc)
	d1 := (-b - sq) / (2 * a)
	d2 := (-b + sq) / (2 * a)
	if d1 < 0 {
		d1 = types.Inf
	}
	if d2 < 0 {
		d2 = types.Inf
	}
	return math.Min(d1, d2)
}

// ApplyBC applies this surface's boundary condition to a particle
// crossing it. Vacuum kills the particle (alive=false returned).
// Reflective mirrors the direction about the normal: u' = u - 2(u.n)n.
// Neither BC moves the particle; the caller has already advanced it to
// the surface.
func (s *Surface) ApplyBC(p types.Vec3, u types.Vec3) (newU types.Vec3, alive bool) {
	if s.Vacuum {
		return u, false
	}
	if s.Reflective {
		n := s.Normal(p)
		proj := 2 * u.Dot(n)
		return u.Sub(n.Scale(proj)), true
	}
	return u, true
}
