// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package models provides the core data structures for the tournament
// scheduling system: teams, alliances, matches, stages and the per-team
// result aggregates that drive ranking and bracket seeding.
package models

import (
	"time"
)

// AllianceColor identifies one of the two sides of a match.
type AllianceColor string

const (
	AllianceRed  AllianceColor = "red"
	AllianceBlue AllianceColor = "blue"
)

// MatchStatus is the lifecycle state of a match. Completed is terminal.
type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in-progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

// StageType selects which generator produces matches for a stage.
type StageType string

const (
	StageTypeOptimized StageType = "optimized"
	StageTypeAdaptive  StageType = "adaptive"
	StageTypeBracket   StageType = "bracket"
)

// Team is an opaque identifier plus a display number.
// Immutable for scheduling purposes.
type Team struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
}

// Field is a physical resource matches are assigned to.
type Field struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
}

// Alliance is one side of a match: an ordered list of team IDs where the
// index is the station position, plus per-station surrogate markers for
// appearances that should not count toward standings.
type Alliance struct {
	Color      AllianceColor `json:"color"`
	TeamIDs    []string      `json:"teamIds"`
	Surrogates []bool        `json:"surrogates,omitempty"`
}

// Contains reports whether the alliance has the given team on any station.
func (a Alliance) Contains(teamID string) bool {
	for _, id := range a.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}

// IsSurrogate reports whether the station at index i is a surrogate
// appearance. Missing markers mean a counting appearance.
func (a Alliance) IsSurrogate(i int) bool {
	return i < len(a.Surrogates) && a.Surrogates[i]
}

// Empty reports whether the alliance has no roster yet. Later-round bracket
// matches start empty until a feeder match is advanced into them.
func (a Alliance) Empty() bool {
	return len(a.TeamIDs) == 0
}

// Match is a single scheduled pairing of two alliances within a stage.
//
// Sequence is monotonic per stage. BracketSlot is a dense per-stage index
// used by bracket stages for seeding geometry and advancement parity; it is
// negative for non-bracket matches. WinnerFeedsInto and LoserFeedsInto hold
// the IDs of the matches this match's winner/loser roster moves into; they
// form a DAG per stage.
type Match struct {
	ID          string      `json:"id"`
	StageID     string      `json:"stageId"`
	Sequence    int         `json:"sequence"`
	Round       int         `json:"round"`
	BracketSlot int         `json:"bracketSlot"`
	Red         Alliance    `json:"red"`
	Blue        Alliance    `json:"blue"`
	FieldID     string      `json:"fieldId"`
	ScheduledAt time.Time   `json:"scheduledAt"`
	Status      MatchStatus `json:"status"`

	RedScore     int           `json:"redScore"`
	BlueScore    int           `json:"blueScore"`
	WinningColor AllianceColor `json:"winningColor,omitempty"`

	WinnerFeedsInto string `json:"winnerFeedsInto,omitempty"`
	LoserFeedsInto  string `json:"loserFeedsInto,omitempty"`
}

// Alliance returns the side with the given color.
func (m Match) Alliance(color AllianceColor) Alliance {
	if color == AllianceBlue {
		return m.Blue
	}
	return m.Red
}

// WinningAlliance returns the winner's roster. The second return value is
// false when the match has no recorded winner (not completed, or a tie).
func (m Match) WinningAlliance() (Alliance, bool) {
	if m.Status != MatchStatusCompleted || m.WinningColor == "" {
		return Alliance{}, false
	}
	return m.Alliance(m.WinningColor), true
}

// LosingAlliance returns the loser's roster, mirroring WinningAlliance.
func (m Match) LosingAlliance() (Alliance, bool) {
	if m.Status != MatchStatusCompleted || m.WinningColor == "" {
		return Alliance{}, false
	}
	if m.WinningColor == AllianceRed {
		return m.Blue, true
	}
	return m.Red, true
}

// Stage is a named scheduling phase of a tournament with its own match
// sequence and exactly one generator type.
type Stage struct {
	ID           string         `json:"id"`
	TournamentID string         `json:"tournamentId"`
	Name         string         `json:"name"`
	Type         StageType      `json:"type"`
	Config       ScheduleConfig `json:"config"`
}

// TeamStats is the per-team result aggregate for a tournament, optionally
// scoped to a stage. Mutated only by the ranking model after match
// completion; the schedulers treat it as read-only input.
type TeamStats struct {
	TeamID       string `json:"teamId"`
	TournamentID string `json:"tournamentId"`
	StageID      string `json:"stageId,omitempty"`

	Wins           int `json:"wins"`
	Losses         int `json:"losses"`
	Ties           int `json:"ties"`
	PointsScored   int `json:"pointsScored"`
	PointsConceded int `json:"pointsConceded"`
	MatchesPlayed  int `json:"matchesPlayed"`

	RankingPoints    int `json:"rankingPoints"`
	OpponentStrength int `json:"opponentStrength"`

	// FinalRank is the placement written by bracket finalization, 0 until
	// the bracket completes.
	FinalRank int `json:"finalRank,omitempty"`
}

// TiebreakTuple returns the ordered secondary metrics used to break
// ranking-point ties: opponent strength, point differential, raw points
// scored. Compared element-wise, higher is better.
func (s TeamStats) TiebreakTuple() [3]int {
	return [3]int{
		s.OpponentStrength,
		s.PointsScored - s.PointsConceded,
		s.PointsScored,
	}
}
