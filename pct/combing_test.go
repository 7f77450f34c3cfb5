// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pct

import (
	"testing"

	"github.com/khurrumsaleem/mcdc-go/bank"
	"github.com/khurrumsaleem/mcdc-go/rng"
	"github.com/khurrumsaleem/mcdc-go/xmpi"
)

func Test_comb_preserves_count_and_weight(t *testing.T) {
	census := bank.New("census", 16)
	for i := 0; i < 7; i++ {
		census.Push(bank.Particle{Weight: 1, Alive: true})
	}
	dest := bank.New("source", 16)

	str := rng.New(42, 1000)
	Comb(xmpi.SingleRank{}, census, dest, 3, str)

	if dest.Size != 3 {
		t.Fatalf("expected 3 combed particles, got %d", dest.Size)
	}
	want := 7.0 / 3.0
	for i := 0; i < dest.Size; i++ {
		w := dest.At(i).Weight
		if diff := w - want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("particle %d weight = %v, want %v", i, w, want)
		}
	}
	if !census.Empty() {
		t.Fatalf("expected census bank cleared after combing")
	}
}

func Test_comb_total_weight_within_one_tooth(t *testing.T) {
	census := bank.New("census", 32)
	for i := 0; i < 20; i++ {
		census.Push(bank.Particle{Weight: 1, Alive: true})
	}
	dest := bank.New("source", 32)

	str := rng.New(7, 1000)
	Comb(xmpi.SingleRank{}, census, dest, 6, str)

	td := 20.0 / 6.0
	total := dest.TotalWeight()
	if diff := total - 20.0; diff > td || diff < -td {
		t.Fatalf("combed total weight %v differs from target 20 by more than one tooth (%v)", total, td)
	}
}

func Test_comb_empty_target_clears_census(t *testing.T) {
	census := bank.New("census", 4)
	census.Push(bank.Particle{Weight: 1})
	dest := bank.New("source", 4)
	str := rng.New(1, 10)
	Comb(xmpi.SingleRank{}, census, dest, 0, str)
	if !census.Empty() {
		t.Fatalf("expected census cleared when target is 0")
	}
	if !dest.Empty() {
		t.Fatalf("expected dest untouched when target is 0")
	}
}
