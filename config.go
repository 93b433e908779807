package trnnut

import (
	"errors"
)

// Config defines decode limits and metrics switches for a Codec.
//
// Config instances are intended to be configured during initialization and then treated as immutable.
type Config struct {
	Limits  LimitsConfig
	Metrics MetricsConfig
}

/*
====================================
LIMITS CONFIG
====================================
*/

// LimitsConfig bounds what Decode accepts before it allocates sections.
//
// Zero values are rejected by Validate; the format widths bound anything larger.
type LimitsConfig struct {
	MaxTokenSize        int
	MaxModules          uint64
	MaxMethodsPerModule uint64
	MaxContracts        uint64
	MaxConstraintsLen   uint64
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles codec and cooldown counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Limits: LimitsConfig{
			MaxTokenSize:        1 << 20,
			MaxModules:          256,
			MaxMethodsPerModule: 256,
			MaxContracts:        256,
			MaxConstraintsLen:   64 << 10,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

// DefaultConfig returns the configuration used by the package-level Encode and Decode.
func DefaultConfig() Config {
	return defaultConfig()
}

// Validate checks that every limit is positive.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	// Limits
	if c.Limits.MaxTokenSize <= 0 {
		return errors.New("Limits MaxTokenSize must be > 0")
	}
	if c.Limits.MaxModules == 0 {
		return errors.New("Limits MaxModules must be > 0")
	}
	if c.Limits.MaxMethodsPerModule == 0 {
		return errors.New("Limits MaxMethodsPerModule must be > 0")
	}
	if c.Limits.MaxContracts == 0 {
		return errors.New("Limits MaxContracts must be > 0")
	}
	if c.Limits.MaxConstraintsLen == 0 {
		return errors.New("Limits MaxConstraintsLen must be > 0")
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics EnableLatencyHistograms requires Metrics Enabled")
	}

	return nil
}
