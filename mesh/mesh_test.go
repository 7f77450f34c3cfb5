// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"
	"testing"

	"github.com/khurrumsaleem/mcdc-go/types"
)

func Test_binary_search(t *testing.T) {
	grid := []float64{0, 1, 2, 3}

	cases := []struct {
		v    float64
		want int
	}{
		{-1, -1},
		{0, 0},
		{0.5, 0},
		{1, 1},
		{2.9, 2},
		{3, 3},
		{10, 3},
	}
	for _, c := range cases {
		got := BinarySearch(c.v, grid)
		if got != c.want {
			t.Fatalf("BinarySearch(%v): got %d want %d", c.v, got, c.want)
		}
	}
}

func Test_distance_search(t *testing.T) {
	grid := []float64{0, 1, 2, 3}

	if d := DistanceSearch(0.5, 0, grid); d != types.Inf {
		t.Fatalf("zero direction must be +inf, got %v", d)
	}
	d := DistanceSearch(0.5, 1, grid)
	if d != 0.5 {
		t.Fatalf("expected 0.5, got %v", d)
	}
	d = DistanceSearch(0.5, -1, grid)
	if d != 0.5 {
		t.Fatalf("expected 0.5 (distance to lower boundary), got %v", d)
	}
	d = DistanceSearch(2.9, 1, grid)
	if math.Abs(d-0.1) > 1e-12 {
		t.Fatalf("moving upward from the last bin must reach the last grid edge at 0.1, got %v", d)
	}
}

func Test_locate_and_distance_to_boundary(t *testing.T) {
	m := &Mesh{
		T: []float64{0, 1, 2},
		X: []float64{0, 1, 2},
		Y: []float64{0, 1, 2},
		Z: []float64{0, 1, 2},
	}
	idx := m.Locate(0.5, 0.5, 0.5, 0.5)
	if idx != (Index{0, 0, 0, 0}) {
		t.Fatalf("unexpected index %+v", idx)
	}
	d, axis := m.DistanceToNextBoundary(0.5, 0.5, 0.5, 0.5, 1, 0, 0, 0)
	if d != 0.5 || axis != AxisT {
		t.Fatalf("expected time axis at 0.5, got d=%v axis=%v", d, axis)
	}
}
