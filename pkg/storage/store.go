// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package storage persists tournaments: stages, rosters, matches and
// standings. Two implementations exist, an in-memory store for tests and
// embedding, and a SQLite store for single-node deployments.
package storage

import (
	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

// Store is the persistence boundary of the scheduling service. Writes of
// multiple matches are atomic: either the whole schedule lands or none
// of it does.
type Store interface {
	UpsertStage(scope *envelope.Scope, stage models.Stage) error
	GetStage(scope *envelope.Scope, stageID string) (models.Stage, error)

	UpsertTeams(scope *envelope.Scope, tournamentID string, teams []models.Team) error
	ListTeams(scope *envelope.Scope, tournamentID string) ([]models.Team, error)

	UpsertFields(scope *envelope.Scope, tournamentID string, fields []models.Field) error
	ListFields(scope *envelope.Scope, tournamentID string) ([]models.Field, error)

	InsertMatches(scope *envelope.Scope, matches []models.Match) error
	UpdateMatch(scope *envelope.Scope, match models.Match) error
	GetMatch(scope *envelope.Scope, matchID string) (models.Match, error)
	// ListMatches returns the stage's matches ordered by sequence.
	ListMatches(scope *envelope.Scope, stageID string) ([]models.Match, error)

	SaveStandings(scope *envelope.Scope, tournamentID, stageID string, stats []models.TeamStats) error
	ListStandings(scope *envelope.Scope, tournamentID, stageID string) ([]models.TeamStats, error)
}
