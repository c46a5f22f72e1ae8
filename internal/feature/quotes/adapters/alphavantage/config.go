// Package alphavantage provides a quote source backed by the Alpha Vantage GLOBAL_QUOTE API.
package alphavantage

import (
	"time"
)

const (
	// DefaultBaseURL is the public Alpha Vantage endpoint.
	DefaultBaseURL = "https://www.alphavantage.co"
	// DefaultTimeout bounds one quote request.
	DefaultTimeout = 15 * time.Second
)

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	Timeout time.Duration // HTTP request timeout
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
