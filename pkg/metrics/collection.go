// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	generationElapsedTime prometheus.HistogramVec
	bestPenalty           prometheus.GaugeVec
	annealingIterations   prometheus.CounterVec
	unscheduledReasons    prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	//nolint:promlinter
	generationElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ab_tsched_generation_elapsed_time_ms",
			Help:    "A histogram of schedule generation elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}, []string{"stage_type", "function"})

	bestPenalty := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ab_tsched_best_penalty",
			Help: "The penalty score of the best schedule candidate of the last generation run",
		}, []string{"stage_type"})

	annealingIterations := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_tsched_annealing_iterations_total",
			Help: "A counter of annealing iterations executed",
		}, []string{"stage_type"})

	unscheduledReasons := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_tsched_unscheduled_reasons",
			Help: "A counter for reasons a generation request produced no schedule",
		}, []string{"stage_type", "reason"})

	return prometheusMetrics{
		generationElapsedTime: *generationElapsedTime,
		bestPenalty:           *bestPenalty,
		annealingIterations:   *annealingIterations,
		unscheduledReasons:    *unscheduledReasons,
	}
}

func (metrics prometheusMetrics) AddGenerationElapsedTimeMs(stageType, function string, elapsedTime time.Duration) {
	metrics.generationElapsedTime.With(prometheus.Labels{"stage_type": stageType, "function": function}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) SetBestPenalty(stageType string, penalty float64) {
	metrics.bestPenalty.With(prometheus.Labels{"stage_type": stageType}).Set(penalty)
}

func (metrics prometheusMetrics) AddAnnealingIterations(stageType string, iterations int) {
	metrics.annealingIterations.With(prometheus.Labels{"stage_type": stageType}).Add(float64(iterations))
}

func (metrics prometheusMetrics) AddUnscheduledReason(stageType string, reason string) {
	metrics.unscheduledReasons.With(prometheus.Labels{"stage_type": stageType, "reason": reason}).Add(float64(1))
}
