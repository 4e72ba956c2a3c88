// Package models defines data structures shared across the extraction,
// placement and summarization packages.
package models

import "time"

// Default runtime values.
const (
	DefaultServiceURL  = "http://127.0.0.1:8000"
	DefaultRatio       = 0.10
	DefaultLevel       = "ratio"
	DefaultSettleDelay = 600 * time.Millisecond
)

// CompanionConfig holds runtime configuration for an activation cycle.
// All values come from CLI flags or their environment fallbacks.
type CompanionConfig struct {
	ServiceURL  string
	Ratio       float64
	Level       string
	SettleDelay time.Duration
	Timeout     time.Duration
}

// WithDefaults fills unset fields.
func (c CompanionConfig) WithDefaults() CompanionConfig {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	if c.Ratio <= 0 {
		c.Ratio = DefaultRatio
	}
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = DefaultSettleDelay
	}
	if c.Timeout <= 0 {
		c.Timeout = 90 * time.Second
	}
	return c
}
