// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type SchedulingMetrics interface {
	AddGenerationElapsedTimeMs(stageType, function string, elapsedTime time.Duration)
	SetBestPenalty(stageType string, penalty float64)
	AddAnnealingIterations(stageType string, iterations int)
	AddUnscheduledReason(stageType string, reason string)
}

func NewMetrics(registry *prometheus.Registry) SchedulingMetrics {
	return setupPrometheusMetrics(registry)
}

// NewNopMetrics returns a collector that discards everything. Used when the
// caller does not supply a registry.
func NewNopMetrics() SchedulingMetrics {
	return nopMetrics{}
}

type nopMetrics struct{}

func (nopMetrics) AddGenerationElapsedTimeMs(string, string, time.Duration) {}
func (nopMetrics) SetBestPenalty(string, float64)                           {}
func (nopMetrics) AddAnnealingIterations(string, int)                       {}
func (nopMetrics) AddUnscheduledReason(string, string)                      {}
