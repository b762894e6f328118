// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package bracket builds single-elimination brackets from standings and
// moves winners through them as results come in.
package bracket

import (
	"time"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/config"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/metrics"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/ranking"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/scheduler"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/utils"
)

type Generator struct {
	cfg     *config.Config
	metrics metrics.SchedulingMetrics
}

func NewGenerator(cfg *config.Config, schedulingMetrics metrics.SchedulingMetrics) *Generator {
	return &Generator{cfg: cfg, metrics: schedulingMetrics}
}

// Generate builds a bracket of 2^rounds seeds. Round 0 pairs seed i with
// seed (size-1-i); later rounds start with empty alliances and get their
// rosters through Advance. Every match carries a BracketSlot, a dense
// index in generation order continuing any slot numbering the stage
// already uses, and a WinnerFeedsInto reference forming the advancement
// DAG. Advance routes winners by a match's position within its round, so
// the numbering may start anywhere.
func (g *Generator) Generate(rootScope *envelope.Scope, opts scheduler.GenerateOptions) ([]models.Match, error) {
	scope := rootScope.NewChildScope("bracket.Generate")
	defer scope.Finish()

	cfg := opts.Stage.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rounds := cfg.Rounds
	size := 1 << rounds
	seeds := g.seedTeamIDs(opts, size)
	if len(seeds) < size {
		return nil, models.ErrInsufficientTeams
	}

	balancer, err := scheduler.NewFieldBalancer(opts.Fields, opts.StartTime, g.matchCycle(cfg), opts.Rand)
	if err != nil {
		return nil, err
	}

	total := size - 1
	ids := make([]string, total)
	for i := range ids {
		ids[i] = utils.GenerateUUID()
	}

	matches := make([]models.Match, 0, total)
	idx := 0
	roundStart := 0
	for r := 0; r < rounds; r++ {
		matchesInRound := size >> (r + 1)
		nextRoundStart := roundStart + matchesInRound
		for i := 0; i < matchesInRound; i++ {
			match := models.Match{
				ID:          ids[idx],
				StageID:     opts.Stage.ID,
				Sequence:    opts.NextSequence + idx,
				Round:       r,
				BracketSlot: opts.NextBracketSlot + idx,
				Status:      models.MatchStatusPending,
				Red:         models.Alliance{Color: models.AllianceRed},
				Blue:        models.Alliance{Color: models.AllianceBlue},
			}
			if r == 0 {
				match.Red.TeamIDs = []string{seeds[i]}
				match.Blue.TeamIDs = []string{seeds[size-1-i]}
			}
			if r < rounds-1 {
				match.WinnerFeedsInto = ids[nextRoundStart+i/2]
			}
			balancer.Assign(&match)
			matches = append(matches, match)
			idx++
		}
		roundStart = nextRoundStart
	}

	scope.Log.
		WithField("stageID", opts.Stage.ID).
		WithField("seeds", size).
		WithField("matchCount", total).
		Info("bracket built")
	return matches, nil
}

func (g *Generator) seedTeamIDs(opts scheduler.GenerateOptions, size int) []string {
	standings := append([]models.TeamStats(nil), opts.Standings...)
	ranking.Sort(standings)

	eligible := map[string]struct{}{}
	for _, team := range opts.Teams {
		eligible[team.ID] = struct{}{}
	}
	seeds := make([]string, 0, size)
	for _, stats := range standings {
		if _, ok := eligible[stats.TeamID]; !ok {
			continue
		}
		seeds = append(seeds, stats.TeamID)
		if len(seeds) == size {
			break
		}
	}
	return seeds
}

func (g *Generator) matchCycle(cfg models.ScheduleConfig) time.Duration {
	if cfg.MatchCycle > 0 {
		return cfg.MatchCycle
	}
	return time.Duration(g.cfg.MatchCycleSeconds) * time.Second
}

// Advance moves the winner of the given match into its forward match and
// returns the updated forward match. It fails if the source has no
// recorded winner, feeds nowhere, or the destination side is already
// filled.
func Advance(scope *envelope.Scope, matches []models.Match, matchID string) (models.Match, error) {
	childScope := scope.NewChildScope("bracket.Advance")
	defer childScope.Finish()

	byID := matchIndex(matches)
	source, ok := byID[matchID]
	if !ok {
		return models.Match{}, models.ErrMatchNotFound
	}
	if source.Status != models.MatchStatusCompleted {
		return models.Match{}, models.ErrMatchNotCompleted
	}
	winner, ok := source.WinningAlliance()
	if !ok {
		return models.Match{}, models.ErrWinnerNotRecorded
	}
	if source.WinnerFeedsInto == "" {
		return models.Match{}, models.ErrNoForwardMatch
	}
	target, ok := byID[source.WinnerFeedsInto]
	if !ok {
		return models.Match{}, models.ErrMatchNotFound
	}

	roster := models.Alliance{TeamIDs: append([]string(nil), winner.TeamIDs...)}
	if FeedColor(matches, source) == models.AllianceRed {
		if !target.Red.Empty() {
			return models.Match{}, models.ErrAlreadyAdvanced
		}
		roster.Color = models.AllianceRed
		target.Red = roster
	} else {
		if !target.Blue.Empty() {
			return models.Match{}, models.ErrAlreadyAdvanced
		}
		roster.Color = models.AllianceBlue
		target.Blue = roster
	}

	childScope.Log.
		WithField("matchID", matchID).
		WithField("targetID", target.ID).
		WithField("color", roster.Color).
		Info("bracket winner advanced")
	return target, nil
}

// FeedColor reports which side of the forward match the given match's
// winner fills: matches at even positions within their round (by ascending
// bracket slot) feed red, odd positions feed blue.
func FeedColor(matches []models.Match, source models.Match) models.AllianceColor {
	position := 0
	for _, match := range matches {
		if match.Round == source.Round && match.BracketSlot >= 0 && match.BracketSlot < source.BracketSlot {
			position++
		}
	}
	if position%2 == 0 {
		return models.AllianceRed
	}
	return models.AllianceBlue
}

// FinalizeRanks computes final placements once every bracket match has a
// recorded winner: the final's winner places 1st and the loser of a match
// at depth d (the final being depth 0) places 2^d+1. Returns the standings
// with FinalRank filled in for every bracket participant.
func FinalizeRanks(scope *envelope.Scope, matches []models.Match, standings []models.TeamStats) ([]models.TeamStats, error) {
	childScope := scope.NewChildScope("bracket.FinalizeRanks")
	defer childScope.Finish()

	depths, finalID, err := bracketDepths(matches)
	if err != nil {
		return nil, err
	}
	for _, match := range matches {
		if _, ok := match.WinningAlliance(); !ok {
			return nil, models.ErrBracketIncomplete
		}
	}

	rankByTeam := map[string]int{}
	for _, match := range matches {
		loser, _ := match.LosingAlliance()
		for _, team := range loser.TeamIDs {
			rankByTeam[team] = 1<<depths[match.ID] + 1
		}
		if match.ID == finalID {
			winner, _ := match.WinningAlliance()
			for _, team := range winner.TeamIDs {
				rankByTeam[team] = 1
			}
		}
	}

	out := append([]models.TeamStats(nil), standings...)
	for i := range out {
		if rank, ok := rankByTeam[out[i].TeamID]; ok {
			out[i].FinalRank = rank
		}
	}
	childScope.Log.WithField("ranked", len(rankByTeam)).Info("bracket ranks finalized")
	return out, nil
}

// bracketDepths walks each match's winner path to the final, measuring its
// depth and validating that the references form an acyclic chain.
func bracketDepths(matches []models.Match) (map[string]int, string, error) {
	byID := matchIndex(matches)
	depths := make(map[string]int, len(matches))
	finalID := ""
	for _, match := range matches {
		depth := 0
		current := match
		for current.WinnerFeedsInto != "" {
			next, ok := byID[current.WinnerFeedsInto]
			if !ok {
				return nil, "", models.ErrMatchNotFound
			}
			depth++
			if depth > len(matches) {
				return nil, "", models.ErrBracketCyclic
			}
			current = next
		}
		depths[match.ID] = depth
		if depth == 0 {
			finalID = match.ID
		}
	}
	return depths, finalID, nil
}

func matchIndex(matches []models.Match) map[string]models.Match {
	byID := make(map[string]models.Match, len(matches))
	for _, match := range matches {
		byID[match.ID] = match
	}
	return byID
}
