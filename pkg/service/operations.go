// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"time"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/common"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/constants"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/eventbus"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/ranking"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/scheduler/bracket"
)

// GenerateOptimizedSchedule runs the annealing optimizer for the stage
// and persists the full qualification schedule in one write.
func (s *SchedulingService) GenerateOptimizedSchedule(rootScope *envelope.Scope, req GenerateScheduleRequest) ([]models.Match, error) {
	scope := rootScope.NewChildScope("service.GenerateOptimizedSchedule")
	defer scope.Finish()
	defer s.observe(models.StageTypeOptimized, constants.GenerateScheduleFunction, time.Now())
	scope.Log.Debugf("request: %s", common.LogJSONFormatter(req))

	release, err := s.lockStage(req.StageID)
	if err != nil {
		return nil, err
	}
	defer release()

	stage, err := s.loadStage(scope, req.StageID, models.StageTypeOptimized)
	if err != nil {
		return nil, err
	}
	opts, err := s.generateOptions(scope, stage, req.StartTime, req.Seed)
	if err != nil {
		return nil, err
	}
	scope.SetAttributes(envelope.StageIDTag, stage.ID)
	scope.SetAttributes(envelope.TeamsTag, len(opts.Teams))

	matches, err := s.optimized.Generate(scope, opts)
	if err != nil {
		s.recordUnscheduled(models.StageTypeOptimized, err)
		return nil, err
	}
	scope.SetAttributes(envelope.MatchCountTag, len(matches))

	if err := s.persistAndAnnounce(scope, stage, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// GenerateNextAdaptiveRound pairs the next round of an adaptive stage
// from the standings implied by the stage's completed matches.
func (s *SchedulingService) GenerateNextAdaptiveRound(rootScope *envelope.Scope, req GenerateScheduleRequest) ([]models.Match, error) {
	scope := rootScope.NewChildScope("service.GenerateNextAdaptiveRound")
	defer scope.Finish()
	defer s.observe(models.StageTypeAdaptive, constants.PairRoundFunction, time.Now())

	release, err := s.lockStage(req.StageID)
	if err != nil {
		return nil, err
	}
	defer release()

	stage, err := s.loadStage(scope, req.StageID, models.StageTypeAdaptive)
	if err != nil {
		return nil, err
	}
	opts, err := s.generateOptions(scope, stage, req.StartTime, req.Seed)
	if err != nil {
		return nil, err
	}
	opts.Standings = ranking.Compute(scope, stage.TournamentID, stage.ID, opts.Teams, opts.History,
		ranking.Options{CountSurrogates: stage.Config.CountSurrogates})
	scope.SetAttributes(envelope.StageIDTag, stage.ID)
	scope.SetAttributes(envelope.TeamsTag, len(opts.Teams))

	matches, err := s.adaptive.Generate(scope, opts)
	if err != nil {
		s.recordUnscheduled(models.StageTypeAdaptive, err)
		return nil, err
	}
	scope.SetAttributes(envelope.MatchCountTag, len(matches))

	if err := s.persistAndAnnounce(scope, stage, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// RecordMatchResult stores a final score on a pending or running match.
// Completed results are terminal and cannot be overwritten.
func (s *SchedulingService) RecordMatchResult(rootScope *envelope.Scope, matchID string, redScore, blueScore int) (models.Match, error) {
	scope := rootScope.NewChildScope("service.RecordMatchResult")
	defer scope.Finish()

	match, err := s.store.GetMatch(scope, matchID)
	if err != nil {
		return models.Match{}, err
	}

	release, err := s.lockStage(match.StageID)
	if err != nil {
		return models.Match{}, err
	}
	defer release()

	// Re-read under the lock; a concurrent result may have landed.
	match, err = s.store.GetMatch(scope, matchID)
	if err != nil {
		return models.Match{}, err
	}
	if match.Status == models.MatchStatusCompleted {
		return models.Match{}, models.ErrMatchCompleted
	}

	match.RedScore = redScore
	match.BlueScore = blueScore
	match.Status = models.MatchStatusCompleted
	switch {
	case redScore > blueScore:
		match.WinningColor = models.AllianceRed
	case blueScore > redScore:
		match.WinningColor = models.AllianceBlue
	default:
		match.WinningColor = ""
	}

	if err := s.store.UpdateMatch(scope, match); err != nil {
		return models.Match{}, err
	}
	return match, nil
}

// RefreshStandings recomputes and persists the standings of a stage. It
// takes the stage lock so a refresh never interleaves with a bracket
// advance or pairing-round generation on the same stage.
func (s *SchedulingService) RefreshStandings(rootScope *envelope.Scope, tournamentID, stageID string) ([]models.TeamStats, error) {
	scope := rootScope.NewChildScope("service.RefreshStandings")
	defer scope.Finish()

	stage, err := s.store.GetStage(scope, stageID)
	if err != nil {
		return nil, err
	}
	defer s.observe(stage.Type, constants.RefreshStandingsFunction, time.Now())

	release, err := s.lockStage(stageID)
	if err != nil {
		return nil, err
	}
	defer release()

	teams, err := s.store.ListTeams(scope, tournamentID)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.ListMatches(scope, stageID)
	if err != nil {
		return nil, err
	}

	stats := ranking.Compute(scope, tournamentID, stageID, teams, matches,
		ranking.Options{CountSurrogates: stage.Config.CountSurrogates})
	if err := s.store.SaveStandings(scope, tournamentID, stageID, stats); err != nil {
		return nil, err
	}

	if s.bus != nil {
		event := eventbus.StandingsRefreshedEvent{
			TournamentID: tournamentID,
			StageID:      stageID,
			TeamCount:    len(stats),
		}
		if err := s.bus.PublishStandingsRefreshed(scope, event); err != nil {
			scope.Log.WithError(err).Warn("standings saved but event publish failed")
		}
	}
	return stats, nil
}

// GetStandings returns the stored standings, computing them first if the
// stage has never been refreshed.
func (s *SchedulingService) GetStandings(rootScope *envelope.Scope, tournamentID, stageID string) ([]models.TeamStats, error) {
	scope := rootScope.NewChildScope("service.GetStandings")
	defer scope.Finish()

	stats, err := s.store.ListStandings(scope, tournamentID, stageID)
	if err != nil {
		return nil, err
	}
	if len(stats) > 0 {
		return stats, nil
	}
	return s.RefreshStandings(scope, tournamentID, stageID)
}

// BuildBracket generates a full single-elimination bracket seeded by the
// standings of another stage (or the tournament when none is named).
func (s *SchedulingService) BuildBracket(rootScope *envelope.Scope, req BuildBracketRequest) ([]models.Match, error) {
	scope := rootScope.NewChildScope("service.BuildBracket")
	defer scope.Finish()
	defer s.observe(models.StageTypeBracket, constants.BuildBracketFunction, time.Now())
	scope.Log.Debugf("request: %s", common.LogJSONFormatter(req))

	release, err := s.lockStage(req.StageID)
	if err != nil {
		return nil, err
	}
	defer release()

	stage, err := s.loadStage(scope, req.StageID, models.StageTypeBracket)
	if err != nil {
		return nil, err
	}
	opts, err := s.generateOptions(scope, stage, req.StartTime, req.Seed)
	if err != nil {
		return nil, err
	}
	opts.Standings, err = s.store.ListStandings(scope, stage.TournamentID, req.SeedingStageID)
	if err != nil {
		return nil, err
	}
	scope.SetAttributes(envelope.StageIDTag, stage.ID)

	matches, err := s.bracket.Generate(scope, opts)
	if err != nil {
		s.recordUnscheduled(models.StageTypeBracket, err)
		return nil, err
	}
	scope.SetAttributes(envelope.MatchCountTag, len(matches))

	if err := s.persistAndAnnounce(scope, stage, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// AdvanceBracket moves the winner of a completed bracket match into its
// forward match and returns both the source and the updated forward match.
func (s *SchedulingService) AdvanceBracket(rootScope *envelope.Scope, matchID string) (models.Match, models.Match, error) {
	scope := rootScope.NewChildScope("service.AdvanceBracket")
	defer scope.Finish()
	defer s.observe(models.StageTypeBracket, constants.AdvanceBracketFunction, time.Now())

	source, err := s.store.GetMatch(scope, matchID)
	if err != nil {
		return models.Match{}, models.Match{}, err
	}

	release, err := s.lockStage(source.StageID)
	if err != nil {
		return models.Match{}, models.Match{}, err
	}
	defer release()

	matches, err := s.store.ListMatches(scope, source.StageID)
	if err != nil {
		return models.Match{}, models.Match{}, err
	}

	target, err := bracket.Advance(scope, matches, matchID)
	if err != nil {
		return models.Match{}, models.Match{}, err
	}
	if err := s.store.UpdateMatch(scope, target); err != nil {
		return models.Match{}, models.Match{}, err
	}

	if s.bus != nil {
		event := eventbus.BracketAdvancedEvent{
			StageID:       source.StageID,
			MatchID:       matchID,
			TargetMatchID: target.ID,
			Color:         bracket.FeedColor(matches, source),
		}
		if err := s.bus.PublishBracketAdvanced(scope, event); err != nil {
			scope.Log.WithError(err).Warn("advancement saved but event publish failed")
		}
	}
	return source, target, nil
}

// FinalizeBracketRanks assigns final placements once the whole bracket
// is decided and persists them in the stage standings.
func (s *SchedulingService) FinalizeBracketRanks(rootScope *envelope.Scope, stageID string) ([]models.TeamStats, error) {
	scope := rootScope.NewChildScope("service.FinalizeBracketRanks")
	defer scope.Finish()
	defer s.observe(models.StageTypeBracket, constants.FinalizeBracketFunction, time.Now())

	release, err := s.lockStage(stageID)
	if err != nil {
		return nil, err
	}
	defer release()

	stage, err := s.loadStage(scope, stageID, models.StageTypeBracket)
	if err != nil {
		return nil, err
	}
	matches, err := s.store.ListMatches(scope, stageID)
	if err != nil {
		return nil, err
	}

	stats, err := s.store.ListStandings(scope, stage.TournamentID, stageID)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		stats = participantRows(stage, matches)
	}

	ranked, err := bracket.FinalizeRanks(scope, matches, stats)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveStandings(scope, stage.TournamentID, stageID, ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}

// participantRows builds empty aggregates for every team in the bracket
// so finalization always has a row to write the rank onto.
func participantRows(stage models.Stage, matches []models.Match) []models.TeamStats {
	seen := map[string]struct{}{}
	var rows []models.TeamStats
	for _, match := range matches {
		for _, alliance := range []models.Alliance{match.Red, match.Blue} {
			for _, team := range alliance.TeamIDs {
				if _, ok := seen[team]; ok {
					continue
				}
				seen[team] = struct{}{}
				rows = append(rows, models.TeamStats{
					TeamID:       team,
					TournamentID: stage.TournamentID,
					StageID:      stage.ID,
				})
			}
		}
	}
	return rows
}
