// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package swisspairing

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/onsi/gomega"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/config"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/metrics"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/scheduler"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/testsetup"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{MatchCycleSeconds: 420}
}

// testOptions ranks team-01 highest and team-NN lowest.
func testOptions(teamCount, allianceSize int, seed int64) scheduler.GenerateOptions {
	cfg := models.DefaultScheduleConfig()
	cfg.AllianceSize = allianceSize

	teams := make([]models.Team, teamCount)
	standings := make([]models.TeamStats, teamCount)
	for i := range teams {
		id := fmt.Sprintf("team-%02d", i+1)
		teams[i] = models.Team{ID: id, Number: i + 1}
		standings[i] = models.TeamStats{
			TeamID:        id,
			RankingPoints: 2 * (teamCount - i),
		}
	}
	return scheduler.GenerateOptions{
		Stage: models.Stage{
			ID:           "stage-1",
			TournamentID: "tour-1",
			Type:         models.StageTypeAdaptive,
			Config:       cfg,
		},
		Teams:     teams,
		Fields:    []models.Field{{ID: "f1", Number: 1}},
		Standings: standings,
		StartTime: time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC),
		Rand:      rand.New(rand.NewSource(seed)),
	}
}

func matchTeams(match models.Match) []string {
	var teams []string
	for _, alliance := range []models.Alliance{match.Red, match.Blue} {
		teams = append(teams, alliance.TeamIDs...)
	}
	return teams
}

func TestGenerateGroupsByStanding(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	gen := NewGenerator(testConfig(), metrics.NewNopMetrics())

	matches, err := gen.Generate(scope, testOptions(8, 2, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("match count = %d, want 2", len(matches))
	}

	top := matchTeams(matches[0])
	for _, id := range []string{"team-01", "team-02", "team-03", "team-04"} {
		if !utils.Contains(top, id) {
			t.Errorf("%s missing from the top match", id)
		}
	}
	bottom := matchTeams(matches[1])
	for _, id := range []string{"team-05", "team-06", "team-07", "team-08"} {
		if !utils.Contains(bottom, id) {
			t.Errorf("%s missing from the bottom match", id)
		}
	}
	for i, match := range matches {
		if match.Round != 0 {
			t.Errorf("match %d round = %d, want 0", i, match.Round)
		}
	}
}

func TestGenerateAvoidsRepeatPartners(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	gen := NewGenerator(testConfig(), metrics.NewNopMetrics())

	opts := testOptions(4, 2, 1)
	// Round 0 already partnered 01+02 and 03+04.
	opts.History = []models.Match{
		{
			ID:      "m0",
			StageID: "stage-1",
			Round:   0,
			Status:  models.MatchStatusCompleted,
			Red:     models.Alliance{Color: models.AllianceRed, TeamIDs: []string{"team-01", "team-02"}},
			Blue:    models.Alliance{Color: models.AllianceBlue, TeamIDs: []string{"team-03", "team-04"}},
		},
	}

	matches, err := gen.Generate(scope, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("match count = %d, want 1", len(matches))
	}
	match := matches[0]
	if match.Round != 1 {
		t.Errorf("round = %d, want 1", match.Round)
	}

	for _, alliance := range []models.Alliance{match.Red, match.Blue} {
		pair := alliance.TeamIDs
		if reflect.DeepEqual(pair, []string{"team-01", "team-02"}) || reflect.DeepEqual(pair, []string{"team-03", "team-04"}) {
			t.Errorf("repeated partners %v despite an alternative", pair)
		}
	}
}

func TestGenerateSkipsLeftoverTeams(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	gen := NewGenerator(testConfig(), metrics.NewNopMetrics())

	matches, err := gen.Generate(scope, testOptions(10, 2, 1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("match count = %d, want 2", len(matches))
	}

	var scheduled []string
	for _, match := range matches {
		scheduled = append(scheduled, matchTeams(match)...)
	}
	// The bottom two sit out, not arbitrary teams.
	if utils.Contains(scheduled, "team-09") || utils.Contains(scheduled, "team-10") {
		t.Error("bottom teams should sit the partial round out")
	}
	if len(scheduled) != 8 {
		t.Errorf("scheduled %d teams, want 8", len(scheduled))
	}
}

func TestGenerateMinimizesDistinctRepeats(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	gen := NewGenerator(testConfig(), metrics.NewNopMetrics())

	headToHead := func(round int, a, b string) models.Match {
		return models.Match{
			ID:      fmt.Sprintf("m%d", round),
			StageID: "stage-1",
			Round:   round,
			Status:  models.MatchStatusCompleted,
			Red:     models.Alliance{Color: models.AllianceRed, TeamIDs: []string{a}},
			Blue:    models.Alliance{Color: models.AllianceBlue, TeamIDs: []string{b}},
		}
	}

	opts := testOptions(4, 2, 1)
	// 01 and 03 opposed five times; 01-02 and 03-04 opposed once each.
	for round := 0; round < 5; round++ {
		opts.History = append(opts.History, headToHead(round, "team-01", "team-03"))
	}
	opts.History = append(opts.History,
		headToHead(5, "team-01", "team-02"),
		headToHead(6, "team-03", "team-04"))

	matches, err := gen.Generate(scope, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("match count = %d, want 1", len(matches))
	}

	// {01,02} vs {03,04} faces one previously-met cross pair; every other
	// split faces two, no matter how often 01 and 03 already met.
	red, blue := matches[0].Red.TeamIDs, matches[0].Blue.TeamIDs
	top := []string{"team-01", "team-02"}
	bottom := []string{"team-03", "team-04"}
	ok := (utils.HasSameElement(red, top) && utils.HasSameElement(blue, bottom)) ||
		(utils.HasSameElement(red, bottom) && utils.HasSameElement(blue, top))
	if !ok {
		t.Errorf("split = %v vs %v, want {team-01,team-02} vs {team-03,team-04}", red, blue)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	gen := NewGenerator(testConfig(), metrics.NewNopMetrics())

	first, err := gen.Generate(g.TestScope, testOptions(12, 3, 5))
	g.Expect(err).To(gomega.BeNil())
	second, err := gen.Generate(g.TestScope, testOptions(12, 3, 5))
	g.Expect(err).To(gomega.BeNil())

	g.Expect(second).To(gomega.HaveLen(len(first)))
	for i := range first {
		g.Expect(second[i].Red.TeamIDs).To(gomega.Equal(first[i].Red.TeamIDs))
		g.Expect(second[i].Blue.TeamIDs).To(gomega.Equal(first[i].Blue.TeamIDs))
	}
}

func TestGenerateInsufficientTeams(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	gen := NewGenerator(testConfig(), metrics.NewNopMetrics())

	_, err := gen.Generate(scope, testOptions(2, 2, 1))
	if err != models.ErrInsufficientTeams {
		t.Errorf("err = %v, want ErrInsufficientTeams", err)
	}
}
