// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package ranking computes per-team result aggregates from completed
// matches and defines the deterministic standing order shared by the
// adaptive pairing engine and the bracket seeder.
package ranking

import (
	"sort"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

// Ranking points awarded per match outcome.
const (
	PointsPerWin = 2
	PointsPerTie = 1
)

// Options controls standings computation.
type Options struct {
	// CountSurrogates includes surrogate appearances in the aggregates.
	// The default excludes them: the extra appearance balances the
	// schedule but does not move the team in the standings.
	CountSurrogates bool
}

type appearance struct {
	match     models.Match
	alliance  models.Alliance
	station   int
	surrogate bool
}

// Compute rebuilds the team result aggregates for a stage from its
// completed matches. Teams without any completed appearance get a zeroed
// record, so every team always has a row in the standings.
func Compute(scope *envelope.Scope, tournamentID, stageID string, teams []models.Team, matches []models.Match, opts Options) []models.TeamStats {
	childScope := scope.NewChildScope("ranking.Compute")
	defer childScope.Finish()

	statsByTeam := make(map[string]*models.TeamStats, len(teams))
	for _, team := range teams {
		statsByTeam[team.ID] = &models.TeamStats{
			TeamID:       team.ID,
			TournamentID: tournamentID,
			StageID:      stageID,
		}
	}

	// opponentsFaced keeps multiplicity: meeting a strong team twice
	// counts its strength twice.
	opponentsFaced := make(map[string][]string, len(teams))

	for _, match := range matches {
		if match.Status != models.MatchStatusCompleted {
			continue
		}
		for _, app := range matchAppearances(match) {
			if app.surrogate && !opts.CountSurrogates {
				continue
			}
			teamID := app.alliance.TeamIDs[app.station]
			stats, ok := statsByTeam[teamID]
			if !ok {
				// A recorded match can reference a team that has since
				// been withdrawn; it still influenced its opponents.
				childScope.Log.WithField("teamID", teamID).Warn("completed match references unknown team")
				continue
			}

			own, opp := allianceScores(match, app.alliance.Color)
			stats.MatchesPlayed++
			stats.PointsScored += own
			stats.PointsConceded += opp
			switch {
			case own > opp:
				stats.Wins++
			case own < opp:
				stats.Losses++
			default:
				stats.Ties++
			}

			other := match.Blue
			if app.alliance.Color == models.AllianceBlue {
				other = match.Red
			}
			opponentsFaced[teamID] = append(opponentsFaced[teamID], other.TeamIDs...)
		}
	}

	for _, stats := range statsByTeam {
		stats.RankingPoints = stats.Wins*PointsPerWin + stats.Ties*PointsPerTie
	}
	// Opponent strength needs every opponent's win count, so it runs
	// after the first pass settled them.
	for teamID, opponents := range opponentsFaced {
		strength := 0
		for _, oppID := range opponents {
			if opp, ok := statsByTeam[oppID]; ok {
				strength += opp.Wins
			}
		}
		statsByTeam[teamID].OpponentStrength = strength
	}

	result := make([]models.TeamStats, 0, len(statsByTeam))
	for _, stats := range statsByTeam {
		result = append(result, *stats)
	}
	Sort(result)
	return result
}

func matchAppearances(match models.Match) []appearance {
	apps := make([]appearance, 0, len(match.Red.TeamIDs)+len(match.Blue.TeamIDs))
	for _, alliance := range []models.Alliance{match.Red, match.Blue} {
		for station := range alliance.TeamIDs {
			apps = append(apps, appearance{
				match:     match,
				alliance:  alliance,
				station:   station,
				surrogate: alliance.IsSurrogate(station),
			})
		}
	}
	return apps
}

func allianceScores(match models.Match, color models.AllianceColor) (own, opp int) {
	if color == models.AllianceBlue {
		return match.BlueScore, match.RedScore
	}
	return match.RedScore, match.BlueScore
}

// Compare orders two aggregates: ranking points first, then the tiebreak
// tuple element-wise, higher being better on every axis. Returns a
// negative value when a ranks above b. Team ID is the final, arbitrary but
// stable fallback so that full ties never depend on input order.
func Compare(a, b models.TeamStats) int {
	if a.RankingPoints != b.RankingPoints {
		return b.RankingPoints - a.RankingPoints
	}
	ta, tb := a.TiebreakTuple(), b.TiebreakTuple()
	for i := range ta {
		if ta[i] != tb[i] {
			return tb[i] - ta[i]
		}
	}
	switch {
	case a.TeamID < b.TeamID:
		return -1
	case a.TeamID > b.TeamID:
		return 1
	}
	return 0
}

// Sort orders standings best-first, in place.
func Sort(stats []models.TeamStats) {
	sort.SliceStable(stats, func(i, j int) bool {
		return Compare(stats[i], stats[j]) < 0
	})
}
