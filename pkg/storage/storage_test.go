// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/testsetup"
)

// Both implementations run the same contract suite.
func runStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	t.Run("stage round trip", func(t *testing.T) {
		store := newStore(t)
		stage := models.Stage{
			ID:           "stage-1",
			TournamentID: "tour-1",
			Name:         "Qualification",
			Type:         models.StageTypeOptimized,
			Config:       models.DefaultScheduleConfig(),
		}
		assert.NoError(t, store.UpsertStage(scope, stage))

		got, err := store.GetStage(scope, "stage-1")
		assert.NoError(t, err)
		assert.Equal(t, stage, got)

		_, err = store.GetStage(scope, "missing")
		assert.True(t, errors.Is(err, models.ErrStageNotFound))
	})

	t.Run("rosters", func(t *testing.T) {
		store := newStore(t)
		teams := []models.Team{{ID: "t1", Number: 1}, {ID: "t2", Number: 2}}
		fields := []models.Field{{ID: "f1", Number: 1}}
		assert.NoError(t, store.UpsertTeams(scope, "tour-1", teams))
		assert.NoError(t, store.UpsertFields(scope, "tour-1", fields))

		gotTeams, err := store.ListTeams(scope, "tour-1")
		assert.NoError(t, err)
		assert.Equal(t, teams, gotTeams)

		gotFields, err := store.ListFields(scope, "tour-1")
		assert.NoError(t, err)
		assert.Equal(t, fields, gotFields)

		// Upsert replaces, not appends.
		assert.NoError(t, store.UpsertTeams(scope, "tour-1", teams[:1]))
		gotTeams, err = store.ListTeams(scope, "tour-1")
		assert.NoError(t, err)
		assert.Len(t, gotTeams, 1)
	})

	t.Run("matches ordered by sequence", func(t *testing.T) {
		store := newStore(t)
		at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
		matches := []models.Match{
			{ID: "m2", StageID: "stage-1", Sequence: 1, BracketSlot: -1, ScheduledAt: at, Status: models.MatchStatusPending},
			{ID: "m1", StageID: "stage-1", Sequence: 0, BracketSlot: -1, ScheduledAt: at, Status: models.MatchStatusPending,
				Red:  models.Alliance{Color: models.AllianceRed, TeamIDs: []string{"t1"}},
				Blue: models.Alliance{Color: models.AllianceBlue, TeamIDs: []string{"t2"}}},
			{ID: "m3", StageID: "other", Sequence: 0, BracketSlot: -1, ScheduledAt: at, Status: models.MatchStatusPending},
		}
		assert.NoError(t, store.InsertMatches(scope, matches))

		got, err := store.ListMatches(scope, "stage-1")
		assert.NoError(t, err)
		if assert.Len(t, got, 2) {
			assert.Equal(t, "m1", got[0].ID)
			assert.Equal(t, "m2", got[1].ID)
			assert.Equal(t, []string{"t1"}, got[0].Red.TeamIDs)
		}

		match, err := store.GetMatch(scope, "m1")
		assert.NoError(t, err)
		match.Status = models.MatchStatusCompleted
		match.RedScore, match.BlueScore = 3, 1
		match.WinningColor = models.AllianceRed
		assert.NoError(t, store.UpdateMatch(scope, match))

		match, err = store.GetMatch(scope, "m1")
		assert.NoError(t, err)
		assert.Equal(t, models.MatchStatusCompleted, match.Status)
		assert.Equal(t, models.AllianceRed, match.WinningColor)

		err = store.UpdateMatch(scope, models.Match{ID: "missing"})
		assert.True(t, errors.Is(err, models.ErrMatchNotFound))

		_, err = store.GetMatch(scope, "missing")
		assert.True(t, errors.Is(err, models.ErrMatchNotFound))
	})

	t.Run("standings keep rank order", func(t *testing.T) {
		store := newStore(t)
		stats := []models.TeamStats{
			{TeamID: "t2", TournamentID: "tour-1", StageID: "stage-1", RankingPoints: 6},
			{TeamID: "t1", TournamentID: "tour-1", StageID: "stage-1", RankingPoints: 4},
		}
		assert.NoError(t, store.SaveStandings(scope, "tour-1", "stage-1", stats))

		got, err := store.ListStandings(scope, "tour-1", "stage-1")
		assert.NoError(t, err)
		assert.Equal(t, stats, got)

		// Saving again replaces the previous snapshot.
		assert.NoError(t, store.SaveStandings(scope, "tour-1", "stage-1", stats[:1]))
		got, err = store.ListStandings(scope, "tour-1", "stage-1")
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		store, err := NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteStore: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		return store
	})
}

func TestMemoryStoreCopiesOnWrite(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()

	store := NewMemoryStore()
	match := models.Match{
		ID: "m1", StageID: "stage-1", BracketSlot: -1, Status: models.MatchStatusPending,
		Red: models.Alliance{Color: models.AllianceRed, TeamIDs: []string{"t1", "t2"}},
	}
	assert.NoError(t, store.InsertMatches(scope, []models.Match{match}))

	// Mutating the caller's slice must not reach the stored copy.
	match.Red.TeamIDs[0] = "tampered"
	got, err := store.GetMatch(scope, "m1")
	assert.NoError(t, err)
	assert.Equal(t, "t1", got.Red.TeamIDs[0])
}
