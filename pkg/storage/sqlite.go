// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS stages (
	id            TEXT PRIMARY KEY,
	tournament_id TEXT NOT NULL,
	payload       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS teams (
	tournament_id TEXT NOT NULL,
	id            TEXT NOT NULL,
	number        INTEGER NOT NULL,
	PRIMARY KEY (tournament_id, id)
);
CREATE TABLE IF NOT EXISTS fields (
	tournament_id TEXT NOT NULL,
	id            TEXT NOT NULL,
	number        INTEGER NOT NULL,
	PRIMARY KEY (tournament_id, id)
);
CREATE TABLE IF NOT EXISTS matches (
	id       TEXT PRIMARY KEY,
	stage_id TEXT NOT NULL,
	sequence INTEGER NOT NULL,
	payload  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_matches_stage ON matches (stage_id, sequence);
CREATE TABLE IF NOT EXISTS standings (
	tournament_id TEXT NOT NULL,
	stage_id      TEXT NOT NULL,
	team_id       TEXT NOT NULL,
	position      INTEGER NOT NULL,
	payload       TEXT NOT NULL,
	PRIMARY KEY (tournament_id, stage_id, team_id)
);
`

// SQLiteStore persists through a single SQLite database. Rows keep the
// queryable keys as columns and the full record as a JSON payload, so
// model evolution does not need schema migrations.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// bootstraps the schema. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertStage(scope *envelope.Scope, stage models.Stage) error {
	payload, err := json.Marshal(stage)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(scope.Ctx,
		`INSERT INTO stages (id, tournament_id, payload) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET tournament_id = excluded.tournament_id, payload = excluded.payload`,
		stage.ID, stage.TournamentID, string(payload))
	return err
}

func (s *SQLiteStore) GetStage(scope *envelope.Scope, stageID string) (models.Stage, error) {
	var payload string
	err := s.db.QueryRowContext(scope.Ctx,
		`SELECT payload FROM stages WHERE id = ?`, stageID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Stage{}, models.ErrStageNotFound
	}
	if err != nil {
		return models.Stage{}, err
	}
	var stage models.Stage
	if err := json.Unmarshal([]byte(payload), &stage); err != nil {
		return models.Stage{}, err
	}
	return stage, nil
}

func (s *SQLiteStore) UpsertTeams(scope *envelope.Scope, tournamentID string, teams []models.Team) error {
	return s.replaceRoster(scope, "teams", tournamentID, len(teams), func(i int) (string, int) {
		return teams[i].ID, teams[i].Number
	})
}

func (s *SQLiteStore) ListTeams(scope *envelope.Scope, tournamentID string) ([]models.Team, error) {
	rows, err := s.db.QueryContext(scope.Ctx,
		`SELECT id, number FROM teams WHERE tournament_id = ? ORDER BY number`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Number); err != nil {
			return nil, err
		}
		out = append(out, team)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpsertFields(scope *envelope.Scope, tournamentID string, fields []models.Field) error {
	return s.replaceRoster(scope, "fields", tournamentID, len(fields), func(i int) (string, int) {
		return fields[i].ID, fields[i].Number
	})
}

func (s *SQLiteStore) ListFields(scope *envelope.Scope, tournamentID string) ([]models.Field, error) {
	rows, err := s.db.QueryContext(scope.Ctx,
		`SELECT id, number FROM fields WHERE tournament_id = ? ORDER BY number`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Field
	for rows.Next() {
		var field models.Field
		if err := rows.Scan(&field.ID, &field.Number); err != nil {
			return nil, err
		}
		out = append(out, field)
	}
	return out, rows.Err()
}

// replaceRoster swaps a tournament's full team or field roster in one
// transaction.
func (s *SQLiteStore) replaceRoster(scope *envelope.Scope, table, tournamentID string, n int, row func(i int) (string, int)) error {
	tx, err := s.db.BeginTx(scope.Ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(scope.Ctx,
		`DELETE FROM `+table+` WHERE tournament_id = ?`, tournamentID); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		id, number := row(i)
		if _, err := tx.ExecContext(scope.Ctx,
			`INSERT INTO `+table+` (tournament_id, id, number) VALUES (?, ?, ?)`,
			tournamentID, id, number); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) InsertMatches(scope *envelope.Scope, matches []models.Match) error {
	tx, err := s.db.BeginTx(scope.Ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, match := range matches {
		payload, err := json.Marshal(match)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(scope.Ctx,
			`INSERT INTO matches (id, stage_id, sequence, payload) VALUES (?, ?, ?, ?)`,
			match.ID, match.StageID, match.Sequence, string(payload)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) UpdateMatch(scope *envelope.Scope, match models.Match) error {
	payload, err := json.Marshal(match)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(scope.Ctx,
		`UPDATE matches SET stage_id = ?, sequence = ?, payload = ? WHERE id = ?`,
		match.StageID, match.Sequence, string(payload), match.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrMatchNotFound
	}
	return nil
}

func (s *SQLiteStore) GetMatch(scope *envelope.Scope, matchID string) (models.Match, error) {
	var payload string
	err := s.db.QueryRowContext(scope.Ctx,
		`SELECT payload FROM matches WHERE id = ?`, matchID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Match{}, models.ErrMatchNotFound
	}
	if err != nil {
		return models.Match{}, err
	}
	var match models.Match
	if err := json.Unmarshal([]byte(payload), &match); err != nil {
		return models.Match{}, err
	}
	return match, nil
}

func (s *SQLiteStore) ListMatches(scope *envelope.Scope, stageID string) ([]models.Match, error) {
	rows, err := s.db.QueryContext(scope.Ctx,
		`SELECT payload FROM matches WHERE stage_id = ? ORDER BY sequence`, stageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Match
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var match models.Match
		if err := json.Unmarshal([]byte(payload), &match); err != nil {
			return nil, err
		}
		out = append(out, match)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveStandings(scope *envelope.Scope, tournamentID, stageID string, stats []models.TeamStats) error {
	tx, err := s.db.BeginTx(scope.Ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(scope.Ctx,
		`DELETE FROM standings WHERE tournament_id = ? AND stage_id = ?`, tournamentID, stageID); err != nil {
		return err
	}
	for position, entry := range stats {
		payload, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(scope.Ctx,
			`INSERT INTO standings (tournament_id, stage_id, team_id, position, payload) VALUES (?, ?, ?, ?, ?)`,
			tournamentID, stageID, entry.TeamID, position, string(payload)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListStandings(scope *envelope.Scope, tournamentID, stageID string) ([]models.TeamStats, error) {
	rows, err := s.db.QueryContext(scope.Ctx,
		`SELECT payload FROM standings WHERE tournament_id = ? AND stage_id = ? ORDER BY position`, tournamentID, stageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.TeamStats
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var entry models.TeamStats
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
