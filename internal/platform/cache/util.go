package cache

import (
	"time"
)

// ClosedMarketFactor stretches the validity window for entries stored while the market is closed.
const ClosedMarketFactor = 3

// ValidityWindow returns how long an entry stays fresh given the market state at insertion.
func ValidityWindow(base time.Duration, marketOpen bool) time.Duration {
	if marketOpen {
		return base
	}
	return base * ClosedMarketFactor
}
