// Package entity defines the domain models for the quotes feature.
package entity

import (
	"strings"
	"time"
)

// Source records where a quote came from.
type Source string

const (
	// SourceLive is a quote fetched from the upstream provider in the current call.
	SourceLive Source = "live"
	// SourceCached is a previously fetched quote served from memory.
	SourceCached Source = "cached"
	// SourceFallback is a quote synthesized from the static reference table.
	SourceFallback Source = "fallback"
)

// Quote is a priced snapshot of one symbol at one instant, with provenance.
type Quote struct {
	Symbol           string    // Ticker symbol, upper-cased (e.g., "NVDA")
	Name             string    // Company name, when known
	Price            float64   // Last price, always > 0
	Change           float64   // Absolute change against the previous close
	ChangePercent    float64   // Change in percent (1.5 means +1.5%)
	Volume           int64     // Session volume, >= 0
	High             float64   // Session high, 0 when the provider omitted it
	Low              float64   // Session low, 0 when the provider omitted it
	PreviousClose    float64   // Previous close, 0 when unknown
	MarketCap        float64   // Estimated market capitalization
	LatestTradingDay string    // Provider trading day ("2006-01-02"), empty for fallback data
	Timestamp        time.Time // When this snapshot was produced
	Source           Source    // Provenance label
}

// WithSource returns a copy of q relabeled with s.
func (q Quote) WithSource(s Source) Quote {
	q.Source = s
	return q
}

// IsLive reports whether q was fetched from the provider.
func (q Quote) IsLive() bool {
	return q.Source == SourceLive
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
