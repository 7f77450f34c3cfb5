// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"math"

	"github.com/khurrumsaleem/mcdc-go/bank"
	"github.com/khurrumsaleem/mcdc-go/geom"
	"github.com/khurrumsaleem/mcdc-go/mesh"
	"github.com/khurrumsaleem/mcdc-go/rng"
	"github.com/khurrumsaleem/mcdc-go/types"
)

// sigmaTotal returns the current cell's total macroscopic cross
// section for the particle's group, plus the α-mode time-absorption
// term.
func (ctx *Context) sigmaTotal(p *bank.Particle) float64 {
	cell := ctx.CellByID(p.CellID)
	if cell == nil {
		return 0
	}
	mat := ctx.Materials[cell.MaterialID]
	sigmaT := mat.Total[p.Group]
	if ctx.AlphaMode {
		sigmaT += math.Abs(ctx.AlphaEff) / p.Speed
	}
	return sigmaT
}

// distanceCollision samples d_collision = -ln(xi)/Σ_T, or +Inf if
// Σ_T == 0.
func distanceCollision(sigmaT float64, str *rng.Stream) float64 {
	if sigmaT == 0 {
		return types.Inf
	}
	xi := str.Draw()
	for xi == 0 {
		xi = str.Draw()
	}
	return -math.Log(xi) / sigmaT
}

// distanceSurface returns the minimum distance to any surface bounding
// the particle's current cell, and the id of the winning surface.
// A plane the particle is moving deeper into the cell's side of is
// skipped, so a particle lying on a plane (a source point on a face, or
// a reflection point) does not re-cross it at distance zero.
func (ctx *Context) distanceSurface(p *bank.Particle) (d float64, surfaceID int) {
	d = types.Inf
	cell := ctx.CellByID(p.CellID)
	if cell == nil {
		return
	}
	pos, dir := p.Position(), p.Direction()
	for _, bs := range cell.Surfaces {
		s, ok := ctx.Surfaces[bs.SurfaceID]
		if !ok {
			continue
		}
		if s.Linear {
			toward := s.G*dir.X + s.H*dir.Y + s.I*dir.Z
			if (bs.Positive && toward > 0) || (!bs.Positive && toward < 0) {
				continue
			}
		}
		dd := s.Distance(pos, dir)
		if dd < d {
			d = dd
			surfaceID = s.ID
		}
	}
	return
}

// distanceMesh returns the minimum distance to the next mesh boundary
// along any of the four axes, the time axis weighted by
// 1/v as specified.
func (ctx *Context) distanceMesh(p *bank.Particle) (d float64, axis mesh.Axis) {
	return ctx.Mesh.DistanceToNextBoundary(p.Time, p.X, p.Y, p.Z, 1/p.Speed, p.Ux, p.Uy, p.Uz)
}

// distanceTimeBoundary returns v*(T_end - t).
func (ctx *Context) distanceTimeBoundary(p *bank.Particle) float64 {
	return p.Speed * (ctx.Settings.TimeBoundary - p.Time)
}

// selectEvent computes the four candidate distances and classifies
// the winning event, applying the tie-break rule: a
// strictly smaller later candidate replaces an earlier one; and if
// the winner is SURFACE with d_surface == d_mesh and the surface is
// not reflective, the event is relabeled SURFACE_N_MESH.
func (ctx *Context) selectEvent(p *bank.Particle, str *rng.Stream) types.Event {
	sigmaT := ctx.sigmaTotal(p)

	dCollision := distanceCollision(sigmaT, str)
	ev := types.Event{Kind: types.EventCollision, Distance: dCollision}

	dSurface, surfaceID := ctx.distanceSurface(p)
	if dSurface < ev.Distance {
		ev = types.Event{Kind: types.EventSurface, Distance: dSurface, SurfaceID: surfaceID}
	}

	dMesh, axisMesh := ctx.distanceMesh(p)
	if dMesh < ev.Distance {
		ev = types.Event{Kind: types.EventMesh, Distance: dMesh, MeshAxis: int(axisMesh)}
	}

	dTimeBoundary := ctx.distanceTimeBoundary(p)
	if dTimeBoundary < ev.Distance {
		ev = types.Event{Kind: types.EventTimeBoundary, Distance: dTimeBoundary}
	}

	if ev.Kind == types.EventSurface {
		const tol = 1e-12
		if math.Abs(dSurface-dMesh) <= tol {
			if s, ok := ctx.Surfaces[surfaceID]; ok && !s.Reflective {
				ev.Coincident = types.EventMesh
				ev.MeshAxis = int(axisMesh)
			}
		}
	}

	return ev
}

// move advances the particle by the winning event's distance along its
// direction, and scores all enabled tracklength-based tallies for this
// segment using the pre-move (g,t,x,y,z) bin: all scored tracklength
// quantities use the chosen distance. Crossing-x/crossing-t are only
// scored when ev actually crossed that axis: crossing-x requires a
// MESH or SURFACE_N_MESH event on the x axis, crossing-t requires a
// TIME_BOUNDARY event or a MESH/SURFACE_N_MESH event on the t axis.
func (ctx *Context) move(p *bank.Particle, ev types.Event) {
	d := ev.Distance
	idx := ctx.Mesh.Locate(p.Time, p.X, p.Y, p.Z)
	w, g := p.Weight, p.Group
	u := p.Direction()

	if ts := ctx.Tallies.TracklengthFlux; ts != nil {
		ts.ScoreTracklengthFlux(g, idx.T, idx.X, idx.Y, idx.Z, d, w)
	}
	if ts := ctx.Tallies.Current; ts != nil {
		ts.ScoreCurrent(g, idx.T, idx.X, idx.Y, idx.Z, d, w, u)
	}
	if ts := ctx.Tallies.Eddington; ts != nil {
		ts.ScoreEddington(g, idx.T, idx.X, idx.Y, idx.Z, d, w, u)
	}

	if ctx.EigenvalueMode {
		cell := ctx.CellByID(p.CellID)
		if cell != nil {
			mat := ctx.Materials[cell.MaterialID]
			nuSigmaF := mat.NuP[g] * mat.Fission[g]
			for j := 0; j < mat.NumDelayedGroups(); j++ {
				nuSigmaF += mat.NuDelayed[g][j] * mat.Fission[g]
			}
			ctx.Eigen.ScoreNuSigmaF(nuSigmaF, w, d)
			if ctx.AlphaMode {
				ctx.Eigen.ScoreInverseSpeed(w, d, p.Speed)
			}
		}
	}

	p.X += d * p.Ux
	p.Y += d * p.Uy
	p.Z += d * p.Uz
	p.Time += d / p.Speed

	// crossing-flux scoring uses the bin the particle was leaving, and
	// only applies when this event actually crossed that mesh axis
	crossedMesh := ev.Kind == types.EventMesh || ev.IsSurfaceAndMesh()

	if ts := ctx.Tallies.CrossingX; ts != nil && crossedMesh && ev.MeshAxis == int(mesh.AxisX) {
		ts.ScoreCrossingX(g, idx.T, idx.X, idx.Y, idx.Z, w, p.Ux)
	}
	if ts := ctx.Tallies.CrossingT; ts != nil {
		if ev.Kind == types.EventTimeBoundary || (crossedMesh && ev.MeshAxis == int(mesh.AxisT)) {
			ts.ScoreCrossingT(g, idx.T, idx.X, idx.Y, idx.Z, w, p.Speed)
		}
	}
}

// Advance performs exactly one event-dispatcher step: compute
// distances, move, and branch on the winning event. historyBank
// receives any secondaries produced this step
// (scattering, fission in fixed-source mode, time-reaction); censusBank receives
// fission secondaries when running in eigenvalue mode. It returns the
// classified event, so callers (the source loop) can log/count it.
func (ctx *Context) Advance(p *bank.Particle, str *rng.Stream, historyBank, censusBank *bank.Bank) types.Event {
	ev := ctx.selectEvent(p, str)
	ctx.move(p, ev)
	p.Event = ev

	switch ev.Kind {
	case types.EventCollision:
		ctx.sampleCollision(p, str, historyBank, censusBank)

	case types.EventSurface:
		ctx.handleSurface(p, ev)

	case types.EventMesh:
		ctx.nudgeThroughMesh(p)

	case types.EventTimeBoundary:
		ctx.Diag.TimeBoundaryKill()
		p.Alive = false
	}

	return ev
}

// handleSurface applies the crossed surface's boundary condition and,
// if the particle survives and the surface isn't reflective, relocates
// it into the neighboring cell (the "SURFACE" transition).
func (ctx *Context) handleSurface(p *bank.Particle, ev types.Event) {
	s, ok := ctx.Surfaces[ev.SurfaceID]
	if !ok {
		ctx.Diag.LostParticle(false, p.CellID)
		p.Alive = false
		return
	}
	u, alive := s.ApplyBC(p.Position(), p.Direction())
	p.SetDirection(u)
	p.LastSurfaceID = s.ID
	if !alive {
		ctx.Diag.VacuumCrossing()
		p.Alive = false
		return
	}
	if s.Reflective {
		return
	}
	// nudge past the surface before re-locating, by types.Precision
	nudged := p.Position().Add(p.Direction().Scale(types.Precision))
	p.SetPosition(nudged)
	cellID, ok := geom.SetCell(ctx.Cells, ctx.Surfaces, nudged)
	if !ok {
		ctx.Diag.LostParticle(false, p.CellID)
		p.Alive = false
		return
	}
	p.CellID = cellID
}

// nudgeThroughMesh advances the particle a hair past a mesh boundary
// so subsequent bin lookups land in the new bin, then keeps it ALIVE
// in the same cell (the "MESH" transition).
func (ctx *Context) nudgeThroughMesh(p *bank.Particle) {
	nudged := p.Position().Add(p.Direction().Scale(types.Precision))
	p.SetPosition(nudged)
}
