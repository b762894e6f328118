// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package swisspairing generates one round at a time for adaptive stages:
// teams are grouped by current standing so near-equals meet, and each
// group is split into alliances so that repeat pairings are minimized.
package swisspairing

import (
	"time"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/config"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/constants"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/group_generator"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/metrics"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/ranking"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/scheduler"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/utils"
)

type Generator struct {
	cfg     *config.Config
	metrics metrics.SchedulingMetrics
	pool    *models.Pool
}

func NewGenerator(cfg *config.Config, schedulingMetrics metrics.SchedulingMetrics) *Generator {
	return &Generator{cfg: cfg, metrics: schedulingMetrics, pool: models.NewPool()}
}

// Generate produces the next round of an adaptive stage. The pairing is
// fully determined by the standings and the stage's match history; only
// field assignment draws from opts.Rand.
func (g *Generator) Generate(rootScope *envelope.Scope, opts scheduler.GenerateOptions) ([]models.Match, error) {
	scope := rootScope.NewChildScope("swisspairing.Generate")
	defer scope.Finish()

	cfg := opts.Stage.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Teams) < cfg.MatchSize() {
		return nil, models.ErrInsufficientTeams
	}

	ordered := g.orderedTeamIDs(scope, opts)
	history := scheduler.NewMatchupHistory(opts.History)
	colors := newColorLedger(opts.History)

	matchSize := cfg.MatchSize()
	leftover := len(ordered) % matchSize
	if leftover > 0 {
		// Teams that do not fill a match sit this round out; the bottom of
		// the standings sits first.
		g.metrics.AddUnscheduledReason(string(models.StageTypeAdaptive), constants.ReasonPartialRoundSkipped)
		scope.Log.
			WithField("stageID", opts.Stage.ID).
			WithField("teams", leftover).
			Warn("leftover teams skipped for this round")
		ordered = ordered[:len(ordered)-leftover]
	}

	balancer, err := scheduler.NewFieldBalancer(opts.Fields, opts.StartTime, g.matchCycle(cfg), opts.Rand)
	if err != nil {
		return nil, err
	}

	round := nextRound(opts.History)
	matches := make([]models.Match, 0, len(ordered)/matchSize)
	for block := 0; block*matchSize < len(ordered); block++ {
		group := ordered[block*matchSize : (block+1)*matchSize]
		first, second := g.bestSplit(cfg, history, group)

		match := models.Match{
			ID:          utils.GenerateUUID(),
			StageID:     opts.Stage.ID,
			Sequence:    opts.NextSequence + block,
			Round:       round,
			BracketSlot: -1,
			Status:      models.MatchStatusPending,
		}
		match.Red, match.Blue = colors.assign(first, second)
		balancer.Assign(&match)
		matches = append(matches, match)

		history.RecordMatch(match)
		colors.recordMatch(match)
	}

	scope.Log.
		WithField("stageID", opts.Stage.ID).
		WithField("round", round).
		WithField("matchCount", len(matches)).
		Info("adaptive round generated")
	return matches, nil
}

// orderedTeamIDs returns team IDs best-first. Teams missing from the
// standings (a late add) sort to the bottom by team number.
func (g *Generator) orderedTeamIDs(scope *envelope.Scope, opts scheduler.GenerateOptions) []string {
	standings := append([]models.TeamStats(nil), opts.Standings...)
	ranking.Sort(standings)

	known := map[string]struct{}{}
	ordered := make([]string, 0, len(opts.Teams))
	teamIDs := map[string]struct{}{}
	for _, team := range opts.Teams {
		teamIDs[team.ID] = struct{}{}
	}
	for _, stats := range standings {
		if _, ok := teamIDs[stats.TeamID]; !ok {
			continue
		}
		ordered = append(ordered, stats.TeamID)
		known[stats.TeamID] = struct{}{}
	}

	missing := pie.Filter(opts.Teams, func(t models.Team) bool {
		_, ok := known[t.ID]
		return !ok
	})
	if len(missing) > 0 {
		scope.Log.WithField("count", len(missing)).Warn("teams missing from standings, appended last")
		missing = pie.SortUsing(missing, func(a, b models.Team) bool {
			return a.Number < b.Number
		})
		for _, team := range missing {
			ordered = append(ordered, team.ID)
		}
	}
	return ordered
}

// bestSplit searches every way of dividing the group into two alliances.
// Splits are ranked first by how many distinct cross-alliance pairs have
// already met, then by the weighted repeat penalty as a tiebreak. The first
// team is pinned to one side so mirrored splits are not revisited, and the
// search stops early on a repeat-free split.
func (g *Generator) bestSplit(cfg models.ScheduleConfig, history *scheduler.MatchupHistory, group []string) (first, second []string) {
	iter := group_generator.NewFixedFirstIterator(len(group), cfg.AllianceSize)

	bestRepeats := -1
	bestPenalty := 0.0
	for combo := iter.Next(); combo != nil; combo = iter.Next() {
		side := g.pool.TeamIDs.Get()[:0]
		for _, i := range combo {
			side = append(side, group[i])
		}
		other := g.pool.TeamIDs.Get()[:0]
		for _, i := range group_generator.Complement(len(group), combo) {
			other = append(other, group[i])
		}

		repeats := splitRepeats(history, side, other)
		penalty := g.splitPenalty(cfg, history, side, other)
		if bestRepeats < 0 || repeats < bestRepeats ||
			(repeats == bestRepeats && penalty < bestPenalty) {
			bestRepeats = repeats
			bestPenalty = penalty
			first = append([]string(nil), side...)
			second = append([]string(nil), other...)
		}
		g.pool.TeamIDs.Put(side)
		g.pool.TeamIDs.Put(other)

		if bestRepeats == 0 && bestPenalty == 0 {
			break
		}
	}
	return first, second
}

// splitRepeats counts the distinct cross-alliance pairs that have shared
// any earlier match. A pair that met five times weighs the same as one
// that met once; only the number of repeated pairings matters here.
func splitRepeats(history *scheduler.MatchupHistory, side, other []string) int {
	repeats := 0
	for _, a := range side {
		for _, b := range other {
			if history.HaveMet(a, b) {
				repeats++
			}
		}
	}
	return repeats
}

func (g *Generator) splitPenalty(cfg models.ScheduleConfig, history *scheduler.MatchupHistory, side, other []string) float64 {
	var penalty float64
	for _, alliance := range [][]string{side, other} {
		for i := 0; i < len(alliance); i++ {
			for j := i + 1; j < len(alliance); j++ {
				penalty += float64(history.PartnerCount(alliance[i], alliance[j])) * cfg.PartnerRepeatWeight
				penalty += float64(history.MeetCount(alliance[i], alliance[j])) * cfg.AnyRepeatWeight
			}
		}
	}
	for _, a := range side {
		for _, b := range other {
			penalty += float64(history.OpponentCount(a, b)) * cfg.OpponentRepeatWeight
			penalty += float64(history.MeetCount(a, b)) * cfg.AnyRepeatWeight
		}
	}
	return penalty
}

func (g *Generator) matchCycle(cfg models.ScheduleConfig) time.Duration {
	if cfg.MatchCycle > 0 {
		return cfg.MatchCycle
	}
	return time.Duration(g.cfg.MatchCycleSeconds) * time.Second
}

func nextRound(history []models.Match) int {
	round := 0
	for _, match := range history {
		if match.Round+1 > round {
			round = match.Round + 1
		}
	}
	return round
}
