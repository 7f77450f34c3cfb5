// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag implements the error-handling taxonomy of the
// transport core on top of gosl's chk/io packages, the same ambient
// stack gofem uses throughout fem/: chk.Panic for fatal errors that
// abort the rank, io's colored Pf* helpers for progress and
// per-particle diagnostics that must not stop the run.
package diag

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Fatal aborts the rank for a configuration or invariant violation
// that leaves the run with no sane way to continue (popping an empty
// bank, a non-power-of-two RNG modulus). Most
// call sites never need to call this directly — bank.Bank and
// rng.Stream already chk.Panic internally — it exists for
// driver-level fatal conditions (bad configuration, solver setup).
func Fatal(format string, args ...interface{}) {
	chk.Panic(format, args...)
}

// Counters accumulates the per-particle diagnostics of a run: lost
// particles, vacuum-BC crossings, time-boundary kills, and delayed
// neutrons dropped past the time boundary. These are absorbed into
// normal event flow and never abort the run; Counters just makes them
// observable (e.g. for an end-of-run summary) instead of silently
// dropping them.
type Counters struct {
	Lost             int64
	VacuumCrossings  int64
	TimeBoundaryKills int64
	DelayedPastBoundary int64
}

// LostParticle records a particle killed because no cell matched its
// position. verbose controls
// whether a diagnostic line is printed immediately; large runs
// typically disable this and inspect Counters at the end instead.
func (c *Counters) LostParticle(verbose bool, id int) {
	c.Lost++
	if verbose {
		io.Pfyel("warning: particle %d lost (no containing cell)\n", id)
	}
}

// VacuumCrossing records a vacuum boundary-condition kill.
func (c *Counters) VacuumCrossing() { c.VacuumCrossings++ }

// TimeBoundaryKill records a time-boundary kill.
func (c *Counters) TimeBoundaryKill() { c.TimeBoundaryKills++ }

// DelayedNeutronDropped records a delayed neutron whose emission time
// exceeded the time boundary.
func (c *Counters) DelayedNeutronDropped() { c.DelayedPastBoundary++ }

// Report prints a one-line summary of accumulated counters, in
// gofem's "Pf-family" progress-message style.
func (c *Counters) Report() {
	io.Pf("diagnostics: lost=%d vacuum=%d time_boundary=%d delayed_dropped=%d\n",
		c.Lost, c.VacuumCrossings, c.TimeBoundaryKills, c.DelayedPastBoundary)
}

// Progress prints a cycle/history progress message, matching
// fem/s_implicit.go's io.PfWhite("%30.15f\r", t) in-place progress
// idiom.
func Progress(enabled bool, format string, args ...interface{}) {
	if !enabled {
		return
	}
	io.PfWhite(format, args...)
}

// Warn prints a non-fatal warning in gofem's io.Pfred style.
func Warn(format string, args ...interface{}) {
	io.Pfred(format, args...)
}

// Info prints an informational message in gofem's io.Pf style.
func Info(format string, args ...interface{}) {
	io.Pf(format, args...)
}
