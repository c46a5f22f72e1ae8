package entity

import "time"

// UsageStats summarizes upstream quota consumption and cache state.
type UsageStats struct {
	Used           int       // Live requests recorded today
	Limit          int       // Daily quota
	Remaining      int       // Limit - Used, never negative
	CacheSize      int       // Number of cached symbols
	CooldownActive bool      // Provider asked us to back off
	LastRequestAt  time.Time // Zero when no live request happened in this process
	MarketOpen     bool      // Regular session is open right now
}
