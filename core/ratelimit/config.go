package ratelimit

import "time"

// QuotaConfig holds windowed-budget settings for quota-scarce platform APIs.
type QuotaConfig struct {
	// Platforms lists the platforms whose adapters are guarded by a budget.
	Platforms []string `mapstructure:"platforms" default:"xbox"`
	// MaxRequests is the number of calls admitted per window.
	MaxRequests int `mapstructure:"max_requests" default:"100"`
	// Window is the rolling window length.
	Window time.Duration `mapstructure:"window" default:"1h"`
}
