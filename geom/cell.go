// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "github.com/khurrumsaleem/mcdc-go/types"

// BoundingSurface names one surface bounding a cell together with the
// sign the cell requires on that surface's evaluated function.
type BoundingSurface struct {
	SurfaceID int
	Positive  bool
}

// Cell is the ordered list of signed surfaces defining a region of
// space, plus the material filling it.
type Cell struct {
	ID         int
	Surfaces   []BoundingSurface
	MaterialID int
}

// Check reports whether p lies inside cell c: every listed surface's
// evaluated sign must match the cell's positive-flag list.
func Check(c *Cell, surfaces map[int]*Surface, p types.Vec3) bool {
	for _, bs := range c.Surfaces {
		s, ok := surfaces[bs.SurfaceID]
		if !ok {
			return false
		}
		v := s.Evaluate(p)
		if bs.Positive && v < 0 {
			return false
		}
		if !bs.Positive && v > 0 {
			return false
		}
	}
	return true
}

// SetCell performs a linear scan over cells, assigning the id of the
// first cell whose Check succeeds. ok is false if the particle is
// lost (no cell matches) — a per-particle error, not fatal.
func SetCell(cells []*Cell, surfaces map[int]*Surface, p types.Vec3) (cellID int, ok bool) {
	for _, c := range cells {
		if Check(c, surfaces, p) {
			return c.ID, true
		}
	}
	return 0, false
}

// CellSurfaces returns the concrete *Surface list bounding cell c, in
// the order surfaces are declared on the cell — used by the event
// dispatcher to minimize distance-to-surface over exactly this set.
func CellSurfaces(c *Cell, surfaces map[int]*Surface) []*Surface {
	out := make([]*Surface, 0, len(c.Surfaces))
	for _, bs := range c.Surfaces {
		if s, ok := surfaces[bs.SurfaceID]; ok {
			out = append(out, s)
		}
	}
	return out
}
