// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

import "time"

const (
	StageLockTimeLimit = 10 * time.Second
)

const (
	GenerateScheduleFunction = "generateOptimizedSchedule"
	PairRoundFunction        = "generateNextAdaptiveRound"
	BuildBracketFunction     = "buildBracket"
	AdvanceBracketFunction   = "advanceBracket"
	FinalizeBracketFunction  = "finalizeBracketRanks"
	RefreshStandingsFunction = "refreshStandings"

	// Unscheduled reason constants.
	ReasonNotEnoughTeams       = "not_enough_teams"
	ReasonNoFieldsAvailable    = "no_fields_available"
	ReasonInvalidConfiguration = "invalid_configuration"
	ReasonPartialRoundSkipped  = "partial_round_skipped"
)

// Event topics published on the event bus.
const (
	TopicScheduleGenerated  = "schedule.generated"
	TopicBracketAdvanced    = "bracket.advanced"
	TopicStandingsRefreshed = "standings.refreshed"
)
