// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh implements the rectilinear space-time tally/scoring
// grid: four monotonically increasing axis grids (t,x,y,z), bin lookup
// by binary search, and distance-to-next-boundary along a direction.
package mesh

import "github.com/khurrumsaleem/mcdc-go/types"

// Mesh is a rectilinear grid over time and the three spatial axes.
// Each grid defines bins numbered 0..len-2; index -1 and len-1 denote
// out-of-grid on the low and high side respectively.
type Mesh struct {
	T []float64
	X []float64
	Y []float64
	Z []float64
}

// BinarySearch returns the bin index i such that grid[i] <= v <
// grid[i+1], with -1 for v < grid[0] and len(grid)-1 for v >=
// grid[len(grid)-1].
func BinarySearch(v float64, grid []float64) int {
	n := len(grid)
	if n == 0 {
		return -1
	}
	if v < grid[0] {
		return -1
	}
	if v >= grid[n-1] {
		return n - 1
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if grid[mid] <= v {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// DistanceSearch returns the distance along dir (a signed velocity
// component) until v next crosses a grid boundary: +Inf if dir==0,
// otherwise (grid[i(+1 if dir>0)] - v) / dir.
func DistanceSearch(v, dir float64, grid []float64) float64 {
	if dir == 0 {
		return types.Inf
	}
	i := BinarySearch(v, grid)
	var boundary float64
	if dir > 0 {
		if i+1 >= len(grid) {
			return types.Inf
		}
		boundary = grid[i+1]
	} else {
		if i < 0 {
			return types.Inf
		}
		boundary = grid[i]
	}
	return (boundary - v) / dir
}

// Index is the (t,x,y,z) bin index of a point/time in the mesh.
type Index struct {
	T, X, Y, Z int
}

// Locate returns the bin index of (t,x,y,z) in the mesh.
func (m *Mesh) Locate(t, x, y, z float64) Index {
	return Index{
		T: BinarySearch(t, m.T),
		X: BinarySearch(x, m.X),
		Y: BinarySearch(y, m.Y),
		Z: BinarySearch(z, m.Z),
	}
}

// Axis names the mesh axis a boundary crossing happens on.
type Axis int

const (
	AxisNone Axis = iota
	AxisT
	AxisX
	AxisY
	AxisZ
)

// DistanceToNextBoundary returns the minimum distance (and the axis
// that achieves it) to the next mesh-boundary crossing for a particle
// at (x,y,z) moving with direction (ux,uy,uz), where ut is the inverse
// speed 1/v, so that the time axis distance is computed consistently
// with the spatial axes: (boundary - t) / ut = (boundary - t) * v.
func (m *Mesh) DistanceToNextBoundary(t, x, y, z float64, ut, ux, uy, uz float64) (d float64, axis Axis) {
	d = types.Inf
	axis = AxisNone
	candidates := []struct {
		v, dir float64
		grid   []float64
		axis   Axis
	}{
		{t, ut, m.T, AxisT},
		{x, ux, m.X, AxisX},
		{y, uy, m.Y, AxisY},
		{z, uz, m.Z, AxisZ},
	}
	for _, c := range candidates {
		dd := DistanceSearch(c.v, c.dir, c.grid)
		if dd < d {
			d = dd
			axis = c.axis
		}
	}
	return
}
