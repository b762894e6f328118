// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"sort"
	"sync"

	"github.com/mitchellh/copystructure"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

// MemoryStore keeps everything in process. Values are deep-copied on the
// way in and out so callers can never alias stored state.
type MemoryStore struct {
	mu        sync.RWMutex
	stages    map[string]models.Stage
	teams     map[string][]models.Team
	fields    map[string][]models.Field
	matches   map[string]models.Match
	standings map[string][]models.TeamStats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stages:    map[string]models.Stage{},
		teams:     map[string][]models.Team{},
		fields:    map[string][]models.Field{},
		matches:   map[string]models.Match{},
		standings: map[string][]models.TeamStats{},
	}
}

func deepCopy[T any](v T) T {
	copied, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	return copied.(T)
}

func standingsKey(tournamentID, stageID string) string {
	return tournamentID + "/" + stageID
}

func (s *MemoryStore) UpsertStage(_ *envelope.Scope, stage models.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages[stage.ID] = deepCopy(stage)
	return nil
}

func (s *MemoryStore) GetStage(_ *envelope.Scope, stageID string) (models.Stage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stage, ok := s.stages[stageID]
	if !ok {
		return models.Stage{}, models.ErrStageNotFound
	}
	return deepCopy(stage), nil
}

func (s *MemoryStore) UpsertTeams(_ *envelope.Scope, tournamentID string, teams []models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[tournamentID] = deepCopy(teams)
	return nil
}

func (s *MemoryStore) ListTeams(_ *envelope.Scope, tournamentID string) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.teams[tournamentID]), nil
}

func (s *MemoryStore) UpsertFields(_ *envelope.Scope, tournamentID string, fields []models.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[tournamentID] = deepCopy(fields)
	return nil
}

func (s *MemoryStore) ListFields(_ *envelope.Scope, tournamentID string) ([]models.Field, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.fields[tournamentID]), nil
}

func (s *MemoryStore) InsertMatches(_ *envelope.Scope, matches []models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, match := range matches {
		s.matches[match.ID] = deepCopy(match)
	}
	return nil
}

func (s *MemoryStore) UpdateMatch(_ *envelope.Scope, match models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[match.ID]; !ok {
		return models.ErrMatchNotFound
	}
	s.matches[match.ID] = deepCopy(match)
	return nil
}

func (s *MemoryStore) GetMatch(_ *envelope.Scope, matchID string) (models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[matchID]
	if !ok {
		return models.Match{}, models.ErrMatchNotFound
	}
	return deepCopy(match), nil
}

func (s *MemoryStore) ListMatches(_ *envelope.Scope, stageID string) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Match
	for _, match := range s.matches {
		if match.StageID == stageID {
			out = append(out, deepCopy(match))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (s *MemoryStore) SaveStandings(_ *envelope.Scope, tournamentID, stageID string, stats []models.TeamStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.standings[standingsKey(tournamentID, stageID)] = deepCopy(stats)
	return nil
}

func (s *MemoryStore) ListStandings(_ *envelope.Scope, tournamentID, stageID string) ([]models.TeamStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopy(s.standings[standingsKey(tournamentID, stageID)]), nil
}
