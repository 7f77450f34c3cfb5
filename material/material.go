// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material holds the per-energy-group multi-group
// cross-section data consumed by the reaction sampler: total,
// capture, scatter, and fission cross-sections, fission/scatter
// multiplicities and spectra, and delayed-neutron precursor data.
package material

import "github.com/cpmech/gosl/chk"

// Material is one multi-group material record, with arrays of length
// G (number of energy groups).
type Material struct {
	ID int

	// per-group cross-sections
	Total   []float64 // Σ_T
	Capture []float64 // Σ_C
	Scatter []float64 // Σ_S
	Fission []float64 // Σ_F

	NuP   []float64 // ν_p: prompt fission multiplicity
	NuS   []float64 // ν_s: scatter multiplicity
	Speed []float64 // v: per-group speed

	// ScatterChi[g][g'] is the probability a neutron scattering out of
	// group g emerges in group g'.
	ScatterChi [][]float64

	// FissionChiPrompt[g][g'] is the prompt fission spectrum: given the
	// colliding neutron's group g, the probability the emitted prompt
	// neutron is born in group g'. Many multi-group libraries make this
	// independent of g; keeping the g-dimension matches .
	FissionChiPrompt [][]float64

	// Delayed-neutron precursor groups, indexed [j].
	NuDelayed        [][]float64 // ν_d[g][j]: delayed multiplicity by (incoming group g, precursor family j)
	FissionChiDelayed [][]float64 // χ_d[j][g']: spectrum of precursor family j
	DecayConstant    []float64   // λ_j
}

// NumGroups returns G, the number of energy groups.
func (m *Material) NumGroups() int { return len(m.Total) }

// NumDelayedGroups returns J, the number of delayed-neutron precursor
// families.
func (m *Material) NumDelayedGroups() int { return len(m.DecayConstant) }

// NuTotal returns the total fission multiplicity for incoming group g:
// ν = ν_p[g] + Σ_j ν_d[g][j].
func (m *Material) NuTotal(g int) float64 {
	nu := m.NuP[g]
	for j := 0; j < m.NumDelayedGroups(); j++ {
		nu += m.NuDelayed[g][j]
	}
	return nu
}

// Validate performs basic shape checks on a material record; called
// once at simulation setup and fatal on failure, aborting the rank for
// malformed configuration.
func (m *Material) Validate() {
	g := m.NumGroups()
	checkLen := func(name string, got int) {
		if got != g {
			chk.Panic("material %d: %s has length %d, expected %d groups", m.ID, name, got, g)
		}
	}
	checkLen("Capture", len(m.Capture))
	checkLen("Scatter", len(m.Scatter))
	checkLen("Fission", len(m.Fission))
	checkLen("NuP", len(m.NuP))
	checkLen("NuS", len(m.NuS))
	checkLen("Speed", len(m.Speed))
	checkLen("ScatterChi", len(m.ScatterChi))
	checkLen("FissionChiPrompt", len(m.FissionChiPrompt))
	for _, row := range m.ScatterChi {
		if len(row) != g {
			chk.Panic("material %d: ScatterChi row has length %d, expected %d", m.ID, len(row), g)
		}
	}
	j := m.NumDelayedGroups()
	if len(m.NuDelayed) != g {
		chk.Panic("material %d: NuDelayed has %d rows, expected %d groups", m.ID, len(m.NuDelayed), g)
	}
	for _, row := range m.NuDelayed {
		if len(row) != j {
			chk.Panic("material %d: NuDelayed row has length %d, expected %d delayed groups", m.ID, len(row), j)
		}
	}
	if len(m.FissionChiDelayed) != j {
		chk.Panic("material %d: FissionChiDelayed has %d rows, expected %d delayed groups", m.ID, len(m.FissionChiDelayed), j)
	}
}
