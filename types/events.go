// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// EventKind names the event a particle is advanced into by the
// dispatcher: a tagged variant with an explicit coincidence field
// rather than magic numeric constants; see Event below.
type EventKind int

const (
	EventNone EventKind = iota
	EventCollision
	EventSurface
	EventMesh
	EventLattice
	EventTimeBoundary
	// terminal / post-collision sub-events, reached only from EventCollision
	EventCapture
	EventScattering
	EventFission
	EventTimeReaction
)

func (k EventKind) String() string {
	switch k {
	case EventCollision:
		return "COLLISION"
	case EventSurface:
		return "SURFACE"
	case EventMesh:
		return "MESH"
	case EventLattice:
		return "LATTICE"
	case EventTimeBoundary:
		return "TIME_BOUNDARY"
	case EventCapture:
		return "CAPTURE"
	case EventScattering:
		return "SCATTERING"
	case EventFission:
		return "FISSION"
	case EventTimeReaction:
		return "TIME_REACTION"
	default:
		return "NONE"
	}
}

// Event is the outcome of one round of distance competition: which
// kind won, and whether a second kind tied with it (the only tie
// classified explicitly is surface-and-mesh; a SurfaceID is carried
// along so the dispatcher doesn't need to re-search).
type Event struct {
	Kind       EventKind
	Coincident EventKind // EventNone if no tie; else EventMesh or EventLattice
	Distance   float64
	SurfaceID  int // valid when Kind == EventSurface

	// MeshAxis carries mesh.Axis's value (T/X/Y/Z) for the mesh-distance
	// candidate considered this step, valid whenever Kind==EventMesh or
	// Coincident==EventMesh. Stored as a bare int rather than mesh.Axis
	// itself to avoid an import cycle (package mesh already imports
	// types for its Inf sentinel).
	MeshAxis int
}

// IsSurfaceAndMesh reports whether this event is the compound
// "surface and mesh" case.
func (e Event) IsSurfaceAndMesh() bool {
	return e.Kind == EventSurface && e.Coincident == EventMesh
}

// PCTCode names a population-control algorithm. CO (combing) is the
// only one implemented; the type exists so additional codes can be
// added without touching call sites.
type PCTCode string

const (
	PCTNone PCTCode = ""
	PCTCO   PCTCode = "CO"
)
