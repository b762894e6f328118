// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import "time"

// QualityTier names a fixed annealing iteration budget.
type QualityTier string

const (
	QualityLow    QualityTier = "low"
	QualityMedium QualityTier = "medium"
	QualityHigh   QualityTier = "high"
)

// Supported alliance sizes. A match holds two alliances, so the match size
// is twice the alliance size.
const (
	MinAllianceSize = 1
	MaxAllianceSize = 3
)

// ScheduleConfig carries everything a generation run needs: alliance size,
// round count, the annealing budget and the penalty weights that define
// schedule quality. It must round-trip exactly between caller and
// optimizer, and is immutable for the duration of one run.
type ScheduleConfig struct {
	AllianceSize int `json:"allianceSize"`
	Rounds       int `json:"rounds"`

	// Quality maps to a fixed iteration budget; Iterations overrides the
	// tier when non-zero.
	Quality    QualityTier `json:"quality"`
	Iterations int         `json:"iterations,omitempty"`

	PartnerRepeatWeight    float64 `json:"partnerRepeatWeight"`
	OpponentRepeatWeight   float64 `json:"opponentRepeatWeight"`
	AnyRepeatWeight        float64 `json:"anyRepeatWeight"`
	SeparationWeight       float64 `json:"separationWeight"`
	ColorImbalanceWeight   float64 `json:"colorImbalanceWeight"`
	StationImbalanceWeight float64 `json:"stationImbalanceWeight"`

	// MinSeparation is the minimum number of rounds between two
	// appearances of the same team before the separation penalty applies.
	MinSeparation int `json:"minSeparation"`

	BalanceStations bool `json:"balanceStations"`

	// CountSurrogates controls whether surrogate appearances (extra
	// matches handed out when the team count does not divide the match
	// size evenly) count toward standings.
	CountSurrogates bool `json:"countSurrogates"`

	// MatchCycle is the time between consecutive matches on one field.
	MatchCycle time.Duration `json:"matchCycle"`
}

// DefaultScheduleConfig returns the weights used when a stage does not
// override them.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		AllianceSize:           2,
		Rounds:                 8,
		Quality:                QualityMedium,
		PartnerRepeatWeight:    3.0,
		OpponentRepeatWeight:   2.0,
		AnyRepeatWeight:        1.0,
		SeparationWeight:       5.0,
		ColorImbalanceWeight:   1.0,
		StationImbalanceWeight: 0.5,
		MinSeparation:          2,
		BalanceStations:        true,
		MatchCycle:             7 * time.Minute,
	}
}

// MatchSize is the number of teams in one match.
func (c ScheduleConfig) MatchSize() int {
	return 2 * c.AllianceSize
}

// Validate checks the structural constraints that apply to every generator.
func (c ScheduleConfig) Validate() error {
	if c.AllianceSize < MinAllianceSize || c.AllianceSize > MaxAllianceSize {
		return ErrAllianceSizeOutOfRange
	}
	if c.Rounds < 1 {
		return ErrRoundCountOutOfRange
	}
	return nil
}
