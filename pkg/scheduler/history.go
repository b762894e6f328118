// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package scheduler

import (
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

// MatchupHistory counts how often each pair of teams has been partnered
// or opposed across a set of matches. Surrogate appearances count here:
// the team was on the field either way, and repeat avoidance cares about
// who actually played together.
type MatchupHistory struct {
	partners  map[string]map[string]int
	opponents map[string]map[string]int
}

// NewMatchupHistory builds the pair counts from prior matches.
func NewMatchupHistory(matches []models.Match) *MatchupHistory {
	h := &MatchupHistory{
		partners:  map[string]map[string]int{},
		opponents: map[string]map[string]int{},
	}
	for _, match := range matches {
		h.RecordMatch(match)
	}
	return h
}

// RecordMatch adds one match's pairings to the history.
func (h *MatchupHistory) RecordMatch(match models.Match) {
	for _, alliance := range []models.Alliance{match.Red, match.Blue} {
		for i := 0; i < len(alliance.TeamIDs); i++ {
			for j := i + 1; j < len(alliance.TeamIDs); j++ {
				h.bump(h.partners, alliance.TeamIDs[i], alliance.TeamIDs[j])
			}
		}
	}
	for _, red := range match.Red.TeamIDs {
		for _, blue := range match.Blue.TeamIDs {
			h.bump(h.opponents, red, blue)
		}
	}
}

func (h *MatchupHistory) bump(counts map[string]map[string]int, a, b string) {
	if counts[a] == nil {
		counts[a] = map[string]int{}
	}
	if counts[b] == nil {
		counts[b] = map[string]int{}
	}
	counts[a][b]++
	counts[b][a]++
}

// PartnerCount returns how many times a and b have been on the same alliance.
func (h *MatchupHistory) PartnerCount(a, b string) int {
	return h.partners[a][b]
}

// OpponentCount returns how many times a and b have been on opposing alliances.
func (h *MatchupHistory) OpponentCount(a, b string) int {
	return h.opponents[a][b]
}

// MeetCount returns how many times a and b have shared a match in any role.
func (h *MatchupHistory) MeetCount(a, b string) int {
	return h.partners[a][b] + h.opponents[a][b]
}

// HaveMet reports whether a and b have ever shared a match.
func (h *MatchupHistory) HaveMet(a, b string) bool {
	return h.MeetCount(a, b) > 0
}
