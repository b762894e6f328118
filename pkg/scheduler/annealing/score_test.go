// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package annealing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

func testSlots() [][]string {
	// 8 teams, 2 rounds of 2 matches, alliance size 2.
	return [][]string{
		{"a", "b", "c", "d"},
		{"e", "f", "g", "h"},
		{"a", "c", "e", "g"},
		{"b", "d", "f", "h"},
	}
}

func TestPairPenalty(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	s := newState(cfg, testSlots())

	tests := []struct {
		name string
		pc   int
		oc   int
		want float64
	}{
		{name: "first meeting is free", pc: 1, oc: 0, want: 0},
		{name: "partner repeat", pc: 2, oc: 0, want: cfg.PartnerRepeatWeight + cfg.AnyRepeatWeight},
		{name: "opponent repeat", pc: 0, oc: 2, want: cfg.OpponentRepeatWeight + cfg.AnyRepeatWeight},
		{name: "mixed roles repeat", pc: 1, oc: 1, want: cfg.AnyRepeatWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.pairPenalty(tt.pc, tt.oc); got != tt.want {
				t.Errorf("pairPenalty(%d,%d) = %v, want %v", tt.pc, tt.oc, got, tt.want)
			}
		})
	}
}

// Incremental updates must track the full recomputation exactly; drift
// here silently corrupts the optimization.
func TestIncrementalPenaltyMatchesFullScore(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	rnd := rand.New(rand.NewSource(3))

	st := newState(cfg, testSlots())
	if math.Abs(st.penalty-st.fullScore()) > 1e-9 {
		t.Fatalf("initial penalty %v != full score %v", st.penalty, st.fullScore())
	}

	applied := 0
	for i := 0; i < 500; i++ {
		mi, mj := rnd.Intn(len(st.slots)), rnd.Intn(len(st.slots))
		if mi == mj {
			continue
		}
		pi, pj := rnd.Intn(st.matchSize), rnd.Intn(st.matchSize)
		if !st.validSwap(mi, pi, mj, pj) {
			continue
		}
		st.applySwap(mi, pi, mj, pj)
		applied++
		if math.Abs(st.penalty-st.fullScore()) > 1e-6 {
			t.Fatalf("after %d swaps: incremental penalty %v != full score %v", applied, st.penalty, st.fullScore())
		}
	}
	if applied == 0 {
		t.Fatal("no swaps applied, test is vacuous")
	}
}

func TestApplySwapIsItsOwnInverse(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	st := newState(cfg, testSlots())
	before := st.penalty

	if !st.validSwap(0, 1, 1, 2) {
		t.Fatal("expected swap to be valid")
	}
	st.applySwap(0, 1, 1, 2)
	st.applySwap(0, 1, 1, 2)

	if math.Abs(st.penalty-before) > 1e-9 {
		t.Errorf("penalty after revert = %v, want %v", st.penalty, before)
	}
	if st.slots[0][1] != "b" || st.slots[1][2] != "g" {
		t.Errorf("slots not restored: %v %v", st.slots[0], st.slots[1])
	}
}

func TestTeamScoreSeparation(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	cfg.MinSeparation = 2
	// Team a plays matches 0 and 1 back to back.
	slots := [][]string{
		{"a", "b", "c", "d"},
		{"a", "f", "g", "h"},
		{"i", "j", "k", "l"},
	}
	st := newState(cfg, slots)

	score := st.teamScore("a")
	// Gap of 1 against a minimum of 2 costs one separation unit. Both
	// appearances are on red station 0, costing two units of color
	// imbalance and a station spread of two.
	want := cfg.SeparationWeight + 2*cfg.ColorImbalanceWeight + 2*cfg.StationImbalanceWeight
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("teamScore(a) = %v, want %v", score, want)
	}
}
