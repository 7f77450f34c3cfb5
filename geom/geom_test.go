// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/khurrumsaleem/mcdc-go/types"
)

func Test_sphere_distance(t *testing.T) {
	// sphere x^2+y^2+z^2 = 1
	sphere := NewQuadric(1, 1, 1, 1, 0, 0, 0, 0, 0, 0, -1, false, false)

	d := sphere.Distance(types.Vec3{}, types.Vec3{X: 1})
	if math.Abs(d-1.0) > 1e-12 {
		t.Fatalf("expected distance 1.0 from origin, got %v", d)
	}

	d = sphere.Distance(types.Vec3{X: 2}, types.Vec3{X: 1})
	if d != types.Inf {
		t.Fatalf("expected +inf heading away from sphere, got %v", d)
	}

	d = sphere.Distance(types.Vec3{X: 2}, types.Vec3{X: -1})
	if math.Abs(d-1.0) > 1e-12 {
		t.Fatalf("expected distance 1.0 heading toward sphere, got %v", d)
	}
}

func Test_linear_distance_and_normal(t *testing.T) {
	// plane x = 1 -> G=1, J=-1
	plane := NewLinear(1, 1, 0, 0, -1, false, false)
	d := plane.Distance(types.Vec3{}, types.Vec3{X: 1})
	if math.Abs(d-1.0) > 1e-12 {
		t.Fatalf("expected distance 1.0, got %v", d)
	}
	d = plane.Distance(types.Vec3{}, types.Vec3{X: -1})
	if d != types.Inf {
		t.Fatalf("expected +inf heading away, got %v", d)
	}
	n := plane.Normal(types.Vec3{X: 1})
	if math.Abs(n.X-1) > 1e-12 || math.Abs(n.Y) > 1e-12 || math.Abs(n.Z) > 1e-12 {
		t.Fatalf("unexpected normal %v", n)
	}
}

func Test_reflective_bc(t *testing.T) {
	plane := NewLinear(1, 1, 0, 0, -1, false, true)
	u, alive := plane.ApplyBC(types.Vec3{X: 1}, types.Vec3{X: 1})
	if !alive {
		t.Fatalf("reflective BC must not kill the particle")
	}
	if math.Abs(u.X+1) > 1e-12 {
		t.Fatalf("expected direction reversed in x, got %v", u)
	}
}

func Test_vacuum_bc_kills(t *testing.T) {
	plane := NewLinear(1, 1, 0, 0, -1, true, false)
	_, alive := plane.ApplyBC(types.Vec3{X: 1}, types.Vec3{X: 1})
	if alive {
		t.Fatalf("vacuum BC must kill the particle")
	}
}

func Test_cell_membership(t *testing.T) {
	// cell bounded by x=0 (positive side, i.e. x>0) and x=1 (negative side, i.e. x<1)
	left := NewLinear(1, 1, 0, 0, 0, false, false)  // x = 0
	right := NewLinear(2, 1, 0, 0, -1, false, false) // x - 1 = 0
	surfaces := map[int]*Surface{1: left, 2: right}

	cell := &Cell{ID: 1, Surfaces: []BoundingSurface{
		{SurfaceID: 1, Positive: true},
		{SurfaceID: 2, Positive: false},
	}}
	cells := []*Cell{cell}

	id, ok := SetCell(cells, surfaces, types.Vec3{X: 0.5})
	if !ok || id != 1 {
		t.Fatalf("expected point inside cell 1, got ok=%v id=%v", ok, id)
	}
	if !Check(cell, surfaces, types.Vec3{X: 0.5}) {
		t.Fatalf("cell_check must hold for the cell set_cell selected")
	}

	_, ok = SetCell(cells, surfaces, types.Vec3{X: -0.5})
	if ok {
		t.Fatalf("expected point outside all cells to be lost")
	}
}
