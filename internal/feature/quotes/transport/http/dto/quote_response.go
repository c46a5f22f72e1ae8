// Package dto defines the JSON shapes of the quotes endpoints.
package dto

import (
	"time"

	"quote_backend/internal/feature/quotes/domain/entity"
)

// QuoteResponse is one quote as served over HTTP.
type QuoteResponse struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Change           float64 `json:"change"`
	ChangePercent    float64 `json:"change_percent"`
	Volume           int64   `json:"volume"`
	High             float64 `json:"high,omitempty"`
	Low              float64 `json:"low,omitempty"`
	PreviousClose    float64 `json:"previous_close,omitempty"`
	MarketCap        float64 `json:"market_cap"`
	LatestTradingDay string  `json:"latest_trading_day,omitempty"`
	Timestamp        string  `json:"timestamp"` // RFC 3339, UTC
	Source           string  `json:"source"`    // live | cached | fallback
}

// UsageResponse reports quota and cache state.
type UsageResponse struct {
	Used           int     `json:"used"`
	Limit          int     `json:"limit"`
	Remaining      int     `json:"remaining"`
	CacheSize      int     `json:"cache_size"`
	CooldownActive bool    `json:"cooldown_active"`
	LastRequestAt  *string `json:"last_request_at"`
	MarketOpen     bool    `json:"market_open"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q entity.Quote) QuoteResponse {
	return QuoteResponse{
		Symbol:           q.Symbol,
		Name:             q.Name,
		Price:            q.Price,
		Change:           q.Change,
		ChangePercent:    q.ChangePercent,
		Volume:           q.Volume,
		High:             q.High,
		Low:              q.Low,
		PreviousClose:    q.PreviousClose,
		MarketCap:        q.MarketCap,
		LatestTradingDay: q.LatestTradingDay,
		Timestamp:        q.Timestamp.UTC().Format(time.RFC3339),
		Source:           string(q.Source),
	}
}

// NewUsageResponse converts usage stats. A zero LastRequestAt is rendered as null.
func NewUsageResponse(u entity.UsageStats) UsageResponse {
	out := UsageResponse{
		Used:           u.Used,
		Limit:          u.Limit,
		Remaining:      u.Remaining,
		CacheSize:      u.CacheSize,
		CooldownActive: u.CooldownActive,
		MarketOpen:     u.MarketOpen,
	}
	if !u.LastRequestAt.IsZero() {
		s := u.LastRequestAt.UTC().Format(time.RFC3339)
		out.LastRequestAt = &s
	}
	return out
}
