// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package scheduler defines the contract shared by the match generators
// and the scheduling primitives they build on: matchup history tracking
// and field assignment.
package scheduler

import (
	"math/rand"
	"time"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

// GenerateOptions is the full input to one generation run. Generators
// treat every field as read-only.
type GenerateOptions struct {
	Stage  models.Stage
	Teams  []models.Team
	Fields []models.Field

	// Standings is the current ordering, best first. Required by the
	// adaptive and bracket generators, ignored by the optimizer.
	Standings []models.TeamStats

	// History holds the prior matches whose pairings should be avoided.
	// For an adaptive stage this is the stage's own earlier rounds.
	History []models.Match

	// StartTime anchors the schedule; the first match on each field is
	// scheduled at it.
	StartTime time.Time

	// NextSequence is the first free per-stage sequence number.
	NextSequence int

	// NextBracketSlot is the first free bracket-slot index in the stage,
	// so an incrementally built bracket continues the existing numbering.
	NextBracketSlot int

	// Rand is the randomness source for the run. Generators must draw all
	// randomness from it so a fixed seed reproduces the schedule.
	Rand *rand.Rand
}

// MatchGenerator produces the matches of one scheduling request. The
// returned matches are pending, fully rostered (bracket generators may
// leave later-round alliances empty) and carry field and time
// assignments. Generators honor cancellation through the scope context.
type MatchGenerator interface {
	Generate(scope *envelope.Scope, opts GenerateOptions) ([]models.Match, error)
}
