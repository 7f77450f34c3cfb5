// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/khurrumsaleem/mcdc-go/config"
	"github.com/khurrumsaleem/mcdc-go/simulation"
	"github.com/khurrumsaleem/mcdc-go/xmpi"
)

// main mirrors gofem's entry point: start MPI, recover and report any
// panic from rank 0 only, and always call mpi.Stop before exiting
// (fem's main.go recover/defer idiom).
func main() {
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	fnamepath, _ := io.ArgToFilename(0, "", ".json", true)
	verbose := io.ArgToBool(1, true)

	if mpi.Rank() == 0 && verbose {
		io.PfWhite("\nMCDC-go -- Monte Carlo neutron transport\n\n")
	}

	settings, technique, err := config.ReadSettingsJSON(fnamepath)
	if err != nil {
		chk.Panic("failed to read settings file %q:\n%v", fnamepath, err)
	}

	cfg := &config.Config{
		Settings:  settings,
		Technique: technique,
	}

	var comm xmpi.Comm
	if mpi.IsOn() {
		comm = xmpi.Gosl{}
	} else {
		comm = xmpi.SingleRank{}
	}

	sim := simulation.NewSimulation(cfg, comm)
	if err := sim.Run(); err != nil {
		chk.Panic("run failed:\n%v", err)
	}
}
