// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package swisspairing

import (
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

// colorLedger tracks how often each team has played red versus blue so
// new matches can even the split out. Deterministic: no randomness, ties
// keep the first alliance on red.
type colorLedger struct {
	redMinusBlue map[string]int
}

func newColorLedger(history []models.Match) *colorLedger {
	l := &colorLedger{redMinusBlue: map[string]int{}}
	for _, match := range history {
		l.recordMatch(match)
	}
	return l
}

func (l *colorLedger) recordMatch(match models.Match) {
	for _, team := range match.Red.TeamIDs {
		l.redMinusBlue[team]++
	}
	for _, team := range match.Blue.TeamIDs {
		l.redMinusBlue[team]--
	}
}

// assign picks colors for the two rosters: the side that has seen red
// less often so far gets it.
func (l *colorLedger) assign(first, second []string) (red, blue models.Alliance) {
	if l.bias(first) > l.bias(second) {
		first, second = second, first
	}
	red = models.Alliance{Color: models.AllianceRed, TeamIDs: first}
	blue = models.Alliance{Color: models.AllianceBlue, TeamIDs: second}
	return red, blue
}

func (l *colorLedger) bias(teamIDs []string) int {
	total := 0
	for _, team := range teamIDs {
		total += l.redMinusBlue[team]
	}
	return total
}
