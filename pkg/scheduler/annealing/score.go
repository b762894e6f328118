// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package annealing

import (
	"sort"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/mathutil"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

type pairKey struct {
	a, b string
}

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// state is a candidate schedule plus everything needed to score a slot
// swap incrementally: pair counts for repeat penalties and per-team
// appearance lists for separation, color and station penalties.
//
// slots[m][p] is the team on position p of match m. Positions [0,A) are
// the red stations, [A,2A) the blue stations, A being the alliance size.
type state struct {
	cfg       models.ScheduleConfig
	matchSize int

	slots [][]string
	apps  map[string][]int

	partnerCount  map[pairKey]int
	opponentCount map[pairKey]int

	penalty float64
}

func newState(cfg models.ScheduleConfig, slots [][]string) *state {
	s := &state{
		cfg:           cfg,
		matchSize:     cfg.MatchSize(),
		slots:         slots,
		apps:          map[string][]int{},
		partnerCount:  map[pairKey]int{},
		opponentCount: map[pairKey]int{},
	}
	for mi, match := range slots {
		for _, team := range match {
			s.apps[team] = append(s.apps[team], mi)
		}
		s.countMatchPairs(mi, 1)
	}
	s.penalty = s.fullScore()
	return s
}

// pairPenalty scores one pair of teams given how often they have been
// partners and opponents. Only meetings beyond the first are penalized.
func (s *state) pairPenalty(pc, oc int) float64 {
	var p float64
	if pc > 1 {
		p += float64(pc-1) * s.cfg.PartnerRepeatWeight
	}
	if oc > 1 {
		p += float64(oc-1) * s.cfg.OpponentRepeatWeight
	}
	if pc+oc > 1 {
		p += float64(pc+oc-1) * s.cfg.AnyRepeatWeight
	}
	return p
}

// countMatchPairs adds d to the partner and opponent counts of every
// pair in match mi, without touching the penalty.
func (s *state) countMatchPairs(mi, d int) {
	match := s.slots[mi]
	a := s.cfg.AllianceSize
	for i := 0; i < len(match); i++ {
		for j := i + 1; j < len(match); j++ {
			key := newPairKey(match[i], match[j])
			samePartner := (i < a) == (j < a)
			if samePartner {
				s.partnerCount[key] += d
			} else {
				s.opponentCount[key] += d
			}
		}
	}
}

// adjustMatchPairs is countMatchPairs plus the matching penalty update.
func (s *state) adjustMatchPairs(mi, d int) {
	match := s.slots[mi]
	a := s.cfg.AllianceSize
	for i := 0; i < len(match); i++ {
		for j := i + 1; j < len(match); j++ {
			key := newPairKey(match[i], match[j])
			pc, oc := s.partnerCount[key], s.opponentCount[key]
			s.penalty -= s.pairPenalty(pc, oc)
			if (i < a) == (j < a) {
				pc += d
				s.partnerCount[key] = pc
			} else {
				oc += d
				s.opponentCount[key] = oc
			}
			s.penalty += s.pairPenalty(pc, oc)
		}
	}
}

// teamScore is the per-team share of the penalty: separation violations
// between consecutive appearances, color imbalance and, when enabled,
// station imbalance.
func (s *state) teamScore(team string) float64 {
	idxs := append([]int(nil), s.apps[team]...)
	sort.Ints(idxs)

	var p float64
	for i := 1; i < len(idxs); i++ {
		gap := idxs[i] - idxs[i-1]
		if gap < s.cfg.MinSeparation {
			p += float64(s.cfg.MinSeparation-gap) * s.cfg.SeparationWeight
		}
	}

	a := s.cfg.AllianceSize
	red, blue := 0, 0
	stations := make([]int, a)
	for _, mi := range idxs {
		pos := s.position(mi, team)
		if pos < a {
			red++
		} else {
			blue++
		}
		stations[pos%a]++
	}
	p += float64(mathutil.Abs(red-blue)) * s.cfg.ColorImbalanceWeight

	if s.cfg.BalanceStations && a > 1 {
		lo, hi := stations[0], stations[0]
		for _, n := range stations[1:] {
			lo = mathutil.Min(lo, n)
			hi = mathutil.Max(hi, n)
		}
		p += float64(hi-lo) * s.cfg.StationImbalanceWeight
	}

	return p
}

func (s *state) position(mi int, team string) int {
	for pos, id := range s.slots[mi] {
		if id == team {
			return pos
		}
	}
	return -1
}

func (s *state) fullScore() float64 {
	var p float64
	for key, pc := range s.partnerCount {
		p += s.pairPenalty(pc, s.opponentCount[key])
	}
	for key, oc := range s.opponentCount {
		// Pairs already scored through the partner map must not be
		// scored twice.
		if _, ok := s.partnerCount[key]; !ok {
			p += s.pairPenalty(0, oc)
		}
	}
	for team := range s.apps {
		p += s.teamScore(team)
	}
	return p
}

// validSwap reports whether exchanging the two slots leaves both matches
// free of duplicate teams.
func (s *state) validSwap(mi, pi, mj, pj int) bool {
	a, b := s.slots[mi][pi], s.slots[mj][pj]
	if a == b {
		return false
	}
	for pos, id := range s.slots[mi] {
		if pos != pi && id == b {
			return false
		}
	}
	for pos, id := range s.slots[mj] {
		if pos != pj && id == a {
			return false
		}
	}
	return true
}

// applySwap exchanges two slots and updates the penalty incrementally.
// The operation is its own inverse.
func (s *state) applySwap(mi, pi, mj, pj int) {
	a, b := s.slots[mi][pi], s.slots[mj][pj]

	// Sorted so float accumulation order, and with it the penalty's low
	// bits, never depends on map iteration order.
	seen := map[string]struct{}{}
	affected := make([]string, 0, 2*s.matchSize)
	for _, id := range append(append([]string(nil), s.slots[mi]...), s.slots[mj]...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		affected = append(affected, id)
	}
	sort.Strings(affected)

	s.adjustMatchPairs(mi, -1)
	s.adjustMatchPairs(mj, -1)
	for _, team := range affected {
		s.penalty -= s.teamScore(team)
	}

	s.slots[mi][pi], s.slots[mj][pj] = b, a
	s.moveAppearance(a, mi, mj)
	s.moveAppearance(b, mj, mi)

	for _, team := range affected {
		s.penalty += s.teamScore(team)
	}
	s.adjustMatchPairs(mi, 1)
	s.adjustMatchPairs(mj, 1)
}

func (s *state) moveAppearance(team string, from, to int) {
	idxs := s.apps[team]
	for i, mi := range idxs {
		if mi == from {
			idxs[i] = to
			return
		}
	}
}
