// Package config holds the engine tunables the host application may override.
package config

import (
	"os"
	"strconv"
	"time"
)

// EngineConfig controls history retention, risk-tier thresholds, and the
// optimistic-write retry discipline.
type EngineConfig struct {
	// HistoryCapacity caps the number of score snapshots retained per site.
	// Oldest entries are evicted first.
	HistoryCapacity int

	// HighRiskThreshold is the minimum score classified as high risk.
	HighRiskThreshold int

	// MediumRiskThreshold is the minimum score classified as medium risk.
	// Everything below is low.
	MediumRiskThreshold int

	// WriteRetries bounds how many times a conflicting profile write is
	// retried before the conflict is surfaced as a persistence failure.
	WriteRetries int

	// WriteRetryDelay is the base backoff between write retries.
	WriteRetryDelay time.Duration
}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		HistoryCapacity:     30,
		HighRiskThreshold:   81,
		MediumRiskThreshold: 61,
		WriteRetries:        3,
		WriteRetryDelay:     50 * time.Millisecond,
	}
}

// LoadConfigFromEnv loads engine configuration from environment variables,
// falling back to defaults for anything unset or unparsable.
func LoadConfigFromEnv() *EngineConfig {
	config := DefaultEngineConfig()

	if capacity := os.Getenv("LENS_HISTORY_CAPACITY"); capacity != "" {
		if c, err := strconv.Atoi(capacity); err == nil && c > 0 {
			config.HistoryCapacity = c
		}
	}

	if high := os.Getenv("LENS_HIGH_RISK_THRESHOLD"); high != "" {
		if h, err := strconv.Atoi(high); err == nil {
			config.HighRiskThreshold = h
		}
	}

	if medium := os.Getenv("LENS_MEDIUM_RISK_THRESHOLD"); medium != "" {
		if m, err := strconv.Atoi(medium); err == nil {
			config.MediumRiskThreshold = m
		}
	}

	if retries := os.Getenv("LENS_WRITE_RETRIES"); retries != "" {
		if r, err := strconv.Atoi(retries); err == nil && r >= 0 {
			config.WriteRetries = r
		}
	}

	if delay := os.Getenv("LENS_WRITE_RETRY_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil {
			config.WriteRetryDelay = d
		}
	}

	return config
}
