// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package service is the facade over the scheduling core: it loads
// tournament state from the store, dispatches to the right generator,
// persists the result atomically and emits lifecycle events.
package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/config"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/constants"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/eventbus"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/metrics"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/scheduler"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/scheduler/annealing"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/scheduler/bracket"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/scheduler/swisspairing"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/storage"
)

// SchedulingService coordinates the generators. Operations on one stage
// are serialized through a per-stage lock; operations on different
// stages run concurrently.
type SchedulingService struct {
	cfg               *config.Config
	store             storage.Store
	bus               *eventbus.Bus
	schedulingMetrics metrics.SchedulingMetrics

	optimized *annealing.Generator
	adaptive  *swisspairing.Generator
	bracket   *bracket.Generator

	stageLocks sync.Map
}

// New wires a service. bus may be nil when the embedder does not consume
// events.
func New(cfg *config.Config, store storage.Store, bus *eventbus.Bus, schedulingMetrics metrics.SchedulingMetrics) *SchedulingService {
	if schedulingMetrics == nil {
		schedulingMetrics = metrics.NewNopMetrics()
	}
	return &SchedulingService{
		cfg:               cfg,
		store:             store,
		bus:               bus,
		schedulingMetrics: schedulingMetrics,
		optimized:         annealing.NewGenerator(cfg, schedulingMetrics),
		adaptive:          swisspairing.NewGenerator(cfg, schedulingMetrics),
		bracket:           bracket.NewGenerator(cfg, schedulingMetrics),
	}
}

// GenerateScheduleRequest asks for match generation on one stage. A zero
// Seed picks a random one; a fixed seed reproduces the schedule exactly.
type GenerateScheduleRequest struct {
	StageID   string
	StartTime time.Time
	Seed      int64
}

// BuildBracketRequest seeds a bracket stage from standings. When
// SeedingStageID is empty the tournament-wide standings are used.
type BuildBracketRequest struct {
	StageID        string
	SeedingStageID string
	StartTime      time.Time
	Seed           int64
}

// lockStage serializes stage access, failing instead of queueing forever.
func (s *SchedulingService) lockStage(stageID string) (release func(), err error) {
	v, _ := s.stageLocks.LoadOrStore(stageID, make(chan struct{}, 1))
	lock := v.(chan struct{})
	select {
	case lock <- struct{}{}:
		return func() { <-lock }, nil
	case <-time.After(constants.StageLockTimeLimit):
		return nil, models.ErrStageLocked
	}
}

func randFor(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func nextSequence(matches []models.Match) int {
	next := 0
	for _, match := range matches {
		if match.Sequence+1 > next {
			next = match.Sequence + 1
		}
	}
	return next
}

// nextBracketSlot skips non-bracket matches, which carry slot -1.
func nextBracketSlot(matches []models.Match) int {
	next := 0
	for _, match := range matches {
		if match.BracketSlot+1 > next {
			next = match.BracketSlot + 1
		}
	}
	return next
}

func (s *SchedulingService) observe(stageType models.StageType, function string, start time.Time) {
	s.schedulingMetrics.AddGenerationElapsedTimeMs(string(stageType), function, time.Since(start))
}

// recordUnscheduled translates a generation failure into a metric reason.
func (s *SchedulingService) recordUnscheduled(stageType models.StageType, err error) {
	var reason string
	switch {
	case err == nil:
		return
	case errors.Is(err, models.ErrInsufficientTeams):
		reason = constants.ReasonNotEnoughTeams
	case errors.Is(err, models.ErrNoFieldsAvailable):
		reason = constants.ReasonNoFieldsAvailable
	case errors.Is(err, models.ErrAllianceSizeOutOfRange), errors.Is(err, models.ErrRoundCountOutOfRange):
		reason = constants.ReasonInvalidConfiguration
	default:
		return
	}
	s.schedulingMetrics.AddUnscheduledReason(string(stageType), reason)
}

// loadStage fetches the stage and checks it has the expected type.
func (s *SchedulingService) loadStage(scope *envelope.Scope, stageID string, expected models.StageType) (models.Stage, error) {
	stage, err := s.store.GetStage(scope, stageID)
	if err != nil {
		return models.Stage{}, err
	}
	if stage.Type != expected {
		return models.Stage{}, models.ErrStageTypeMismatch
	}
	return stage, nil
}

func (s *SchedulingService) generateOptions(scope *envelope.Scope, stage models.Stage, startTime time.Time, seed int64) (scheduler.GenerateOptions, error) {
	teams, err := s.store.ListTeams(scope, stage.TournamentID)
	if err != nil {
		return scheduler.GenerateOptions{}, err
	}
	fields, err := s.store.ListFields(scope, stage.TournamentID)
	if err != nil {
		return scheduler.GenerateOptions{}, err
	}
	history, err := s.store.ListMatches(scope, stage.ID)
	if err != nil {
		return scheduler.GenerateOptions{}, err
	}
	return scheduler.GenerateOptions{
		Stage:           stage,
		Teams:           teams,
		Fields:          fields,
		History:         history,
		StartTime:       startTime,
		NextSequence:    nextSequence(history),
		NextBracketSlot: nextBracketSlot(history),
		Rand:            randFor(seed),
	}, nil
}

func (s *SchedulingService) persistAndAnnounce(scope *envelope.Scope, stage models.Stage, matches []models.Match) error {
	if err := s.store.InsertMatches(scope, matches); err != nil {
		return err
	}
	if s.bus != nil {
		event := eventbus.ScheduleGeneratedEvent{
			TournamentID: stage.TournamentID,
			StageID:      stage.ID,
			StageType:    stage.Type,
			MatchCount:   len(matches),
			GeneratedAt:  time.Now().UTC(),
		}
		if err := s.bus.PublishScheduleGenerated(scope, event); err != nil {
			scope.Log.WithError(err).Warn("schedule persisted but event publish failed")
		}
	}
	return nil
}
