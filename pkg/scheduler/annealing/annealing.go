// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package annealing generates qualification schedules by simulated
// annealing: start from a round-robin style seed schedule, then repeatedly
// swap two slots, keeping improvements always and regressions with a
// probability that decays as the temperature cools.
package annealing

import (
	"math"
	"sort"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/elliotchance/pie/v2"
	"github.com/mitchellh/copystructure"
	"gonum.org/v1/gonum/stat"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/config"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/envelope"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/metrics"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/scheduler"
	"github.com/AccelByte/extend-tournament-scheduler/pkg/utils"
)

// Report summarizes one annealing run for logging and tuning.
type Report struct {
	Penalty           float64 `json:"penalty"`
	InitialPenalty    float64 `json:"initialPenalty"`
	Iterations        int     `json:"iterations"`
	AcceptedSwaps     int     `json:"acceptedSwaps"`
	TeamPenaltyMean   float64 `json:"teamPenaltyMean"`
	TeamPenaltyStdDev float64 `json:"teamPenaltyStdDev"`
}

type Generator struct {
	cfg     *config.Config
	metrics metrics.SchedulingMetrics

	// onBestPenalty, when set, receives every best-candidate penalty in
	// the order the run finds them, starting with the seed schedule's.
	onBestPenalty func(float64)
}

func NewGenerator(cfg *config.Config, schedulingMetrics metrics.SchedulingMetrics) *Generator {
	return &Generator{cfg: cfg, metrics: schedulingMetrics}
}

// Generate produces the full match list for an optimized stage. The run is
// deterministic for a given opts.Rand seed.
func (g *Generator) Generate(rootScope *envelope.Scope, opts scheduler.GenerateOptions) ([]models.Match, error) {
	scope := rootScope.NewChildScope("annealing.Generate")
	defer scope.Finish()

	cfg := opts.Stage.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Teams) < cfg.MatchSize() {
		return nil, models.ErrInsufficientTeams
	}

	st := newState(cfg, g.initialSlots(cfg, opts))
	initialPenalty := st.penalty

	iterations := cfg.Iterations
	if iterations <= 0 {
		iterations = g.cfg.IterationsForQuality(cfg.Quality)
	}

	best := snapshot(st.slots)
	bestPenalty := st.penalty
	g.observeBest(bestPenalty)
	temperature := g.cfg.InitialTemperature
	accepted := 0
	completed := iterations
	rnd := opts.Rand

	for i := 0; i < iterations; i++ {
		if i%g.cfg.CoolingInterval == 0 {
			if i > 0 {
				temperature *= g.cfg.CoolingRate
				if temperature < g.cfg.MinTemperature {
					temperature = g.cfg.MinTemperature
				}
			}
			// Cancellation stops the search; the best candidate so far is
			// still a complete schedule and is returned as the result.
			if err := scope.Ctx.Err(); err != nil {
				completed = i
				scope.Log.WithError(err).Warn("annealing cancelled, keeping best candidate")
				break
			}
		}

		mi, mj := rnd.Intn(len(st.slots)), rnd.Intn(len(st.slots))
		if mi == mj {
			continue
		}
		pi, pj := rnd.Intn(st.matchSize), rnd.Intn(st.matchSize)
		if !st.validSwap(mi, pi, mj, pj) {
			continue
		}

		before := st.penalty
		st.applySwap(mi, pi, mj, pj)
		delta := st.penalty - before
		if delta > 0 && rnd.Float64() >= math.Exp(-delta/temperature) {
			st.applySwap(mi, pi, mj, pj)
			continue
		}

		accepted++
		if st.penalty < bestPenalty {
			bestPenalty = st.penalty
			best = snapshot(st.slots)
			g.observeBest(bestPenalty)
		}
	}

	g.metrics.AddAnnealingIterations(string(models.StageTypeOptimized), completed)
	g.metrics.SetBestPenalty(string(models.StageTypeOptimized), bestPenalty)

	report := g.buildReport(cfg, best, initialPenalty, bestPenalty, completed, accepted)
	scope.Log.
		WithField("stageID", opts.Stage.ID).
		WithField("penalty", report.Penalty).
		WithField("acceptedSwaps", report.AcceptedSwaps).
		Info("annealing run finished")
	scope.Log.Debug(spew.Sdump(report))

	return g.toMatches(best, cfg, opts)
}

// initialSlots seeds the schedule. Teams are ordered by how often they have
// appeared so far (shuffled within ties), then dealt into slots cyclically.
// Two appearances of one team in a round land at least a full match apart,
// so the seed never puts a team twice into the same match.
func (g *Generator) initialSlots(cfg models.ScheduleConfig, opts scheduler.GenerateOptions) [][]string {
	ids := pie.Map(opts.Teams, func(t models.Team) string { return t.ID })
	n := len(ids)
	matchSize := cfg.MatchSize()
	matchesPerRound := (n + matchSize - 1) / matchSize

	counts := make(map[string]int, n)
	slots := make([][]string, 0, cfg.Rounds*matchesPerRound)
	for r := 0; r < cfg.Rounds; r++ {
		order := append([]string(nil), ids...)
		opts.Rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		sort.SliceStable(order, func(i, j int) bool {
			return counts[order[i]] < counts[order[j]]
		})

		for m := 0; m < matchesPerRound; m++ {
			match := make([]string, matchSize)
			for p := 0; p < matchSize; p++ {
				team := order[(m*matchSize+p)%n]
				match[p] = team
				counts[team]++
			}
			slots = append(slots, match)
		}
	}
	return slots
}

// toMatches converts the winning slot assignment into persistable matches
// with field, time, round and surrogate annotations.
func (g *Generator) toMatches(slots [][]string, cfg models.ScheduleConfig, opts scheduler.GenerateOptions) ([]models.Match, error) {
	balancer, err := scheduler.NewFieldBalancer(opts.Fields, opts.StartTime, g.matchCycle(cfg), opts.Rand)
	if err != nil {
		return nil, err
	}

	n := len(opts.Teams)
	matchSize := cfg.MatchSize()
	matchesPerRound := (n + matchSize - 1) / matchSize

	appearances := make(map[string]int, n)
	matches := make([]models.Match, 0, len(slots))
	for idx, slot := range slots {
		match := models.Match{
			ID:          utils.GenerateUUID(),
			StageID:     opts.Stage.ID,
			Sequence:    opts.NextSequence + idx,
			Round:       idx / matchesPerRound,
			BracketSlot: -1,
			Status:      models.MatchStatusPending,
			Red: models.Alliance{
				Color:   models.AllianceRed,
				TeamIDs: append([]string(nil), slot[:cfg.AllianceSize]...),
			},
			Blue: models.Alliance{
				Color:   models.AllianceBlue,
				TeamIDs: append([]string(nil), slot[cfg.AllianceSize:]...),
			},
		}

		// Appearances beyond one per round are surrogates: the team plays
		// but the result does not count toward its standing.
		for _, alliance := range []*models.Alliance{&match.Red, &match.Blue} {
			var surrogates []bool
			for i, team := range alliance.TeamIDs {
				appearances[team]++
				if appearances[team] > cfg.Rounds {
					if surrogates == nil {
						surrogates = make([]bool, len(alliance.TeamIDs))
					}
					surrogates[i] = true
				}
			}
			alliance.Surrogates = surrogates
		}

		balancer.Assign(&match)
		matches = append(matches, match)
	}
	return matches, nil
}

func (g *Generator) observeBest(penalty float64) {
	if g.onBestPenalty != nil {
		g.onBestPenalty(penalty)
	}
}

func (g *Generator) matchCycle(cfg models.ScheduleConfig) time.Duration {
	if cfg.MatchCycle > 0 {
		return cfg.MatchCycle
	}
	return time.Duration(g.cfg.MatchCycleSeconds) * time.Second
}

func (g *Generator) buildReport(cfg models.ScheduleConfig, best [][]string, initialPenalty, bestPenalty float64, iterations, accepted int) Report {
	st := newState(cfg, snapshot(best))
	teamScores := make([]float64, 0, len(st.apps))
	for team := range st.apps {
		teamScores = append(teamScores, st.teamScore(team))
	}
	return Report{
		Penalty:           bestPenalty,
		InitialPenalty:    initialPenalty,
		Iterations:        iterations,
		AcceptedSwaps:     accepted,
		TeamPenaltyMean:   stat.Mean(teamScores, nil),
		TeamPenaltyStdDev: stat.StdDev(teamScores, nil),
	}
}

func snapshot(slots [][]string) [][]string {
	copied, err := copystructure.Copy(slots)
	if err != nil {
		// Copying a plain slice of slices cannot fail; keep the fallback
		// so a future shape change degrades to a manual copy.
		out := make([][]string, len(slots))
		for i, s := range slots {
			out[i] = append([]string(nil), s...)
		}
		return out
	}
	return copied.([][]string)
}
