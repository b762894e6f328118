// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"github.com/caarlos0/env"

	"github.com/AccelByte/extend-tournament-scheduler/pkg/models"
)

type Config struct {
	QualityLowIterations    int     `env:"QUALITY_LOW_ITERATIONS"    envDefault:"50000"   envDocs:"annealing iteration budget for the low quality tier"`
	QualityMediumIterations int     `env:"QUALITY_MEDIUM_ITERATIONS" envDefault:"500000"  envDocs:"annealing iteration budget for the medium quality tier"`
	QualityHighIterations   int     `env:"QUALITY_HIGH_ITERATIONS"   envDefault:"2000000" envDocs:"annealing iteration budget for the high quality tier"`
	InitialTemperature      float64 `env:"ANNEALING_INITIAL_TEMP"    envDefault:"10.0"    envDocs:"starting temperature of the annealing run"`
	MinTemperature          float64 `env:"ANNEALING_MIN_TEMP"        envDefault:"0.001"   envDocs:"annealing stops when the temperature decays below this"`
	CoolingRate             float64 `env:"ANNEALING_COOLING_RATE"    envDefault:"0.97"    envDocs:"multiplicative temperature decay applied every cooling interval"`
	CoolingInterval         int     `env:"ANNEALING_COOLING_INTERVAL" envDefault:"1000"   envDocs:"number of iterations between temperature decays"`
	MatchCycleSeconds       int     `env:"MATCH_CYCLE_SECONDS"       envDefault:"420"     envDocs:"time between consecutive matches on one field in seconds (0 means use default from code)"`
	EventBufferSize         int     `env:"EVENT_BUFFER_SIZE"         envDefault:"64"      envDocs:"output buffer of the in-process event bus"`
}

// FromEnv builds a Config from environment variables, applying defaults for
// everything unset.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IterationsForQuality maps a named quality tier to its iteration budget.
// Unknown tiers get the medium budget.
func (c *Config) IterationsForQuality(tier models.QualityTier) int {
	switch tier {
	case models.QualityLow:
		return c.QualityLowIterations
	case models.QualityHigh:
		return c.QualityHighIterations
	default:
		return c.QualityMediumIterations
	}
}
