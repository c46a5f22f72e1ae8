package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quote_backend/internal/feature/quotes/domain/entity"
)

const (
	// DefaultRefreshOpen is the refresh period while the market is open.
	DefaultRefreshOpen = 5 * time.Minute
	// DefaultRefreshClosed is the refresh period outside regular hours.
	DefaultRefreshClosed = 10 * time.Minute
)

// BatchQuoter resolves a list of symbols.
type BatchQuoter interface {
	GetQuotes(ctx context.Context, symbols []string) []entity.Quote
}

// SymbolLister returns the symbols to keep warm.
type SymbolLister interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
}

// Refresher periodically resolves the watchlist so the cache stays warm.
type Refresher struct {
	quoter         BatchQuoter
	symbols        SymbolLister
	market         MarketClock
	openInterval   time.Duration
	closedInterval time.Duration
	now            func() time.Time
	logger         *zap.Logger
}

// NewRefresher creates a Refresher. Non-positive intervals use the defaults.
func NewRefresher(quoter BatchQuoter, symbols SymbolLister, market MarketClock, openInterval, closedInterval time.Duration, logger *zap.Logger) *Refresher {
	if openInterval <= 0 {
		openInterval = DefaultRefreshOpen
	}
	if closedInterval <= 0 {
		closedInterval = DefaultRefreshClosed
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		quoter:         quoter,
		symbols:        symbols,
		market:         market,
		openInterval:   openInterval,
		closedInterval: closedInterval,
		now:            time.Now,
		logger:         logger,
	}
}

// Interval returns the wait before the next refresh at t.
func (r *Refresher) Interval(t time.Time) time.Duration {
	if r.market.IsOpen(t) {
		return r.openInterval
	}
	return r.closedInterval
}

// Run refreshes immediately and then on every interval until ctx is cancelled.
// It returns nil on cancellation.
func (r *Refresher) Run(ctx context.Context) error {
	for {
		r.RefreshOnce(ctx)

		wait := r.Interval(r.now())
		r.logger.Debug("next refresh scheduled", zap.Duration("in", wait))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// RefreshOnce resolves the active watchlist once.
func (r *Refresher) RefreshOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	codes, err := r.symbols.ListActiveCodes(ctx)
	if err != nil {
		r.logger.Error("failed to load watchlist", zap.Error(err))
		return
	}
	if len(codes) == 0 {
		return
	}

	quotes := r.quoter.GetQuotes(ctx, codes)
	live := 0
	for _, q := range quotes {
		if q.IsLive() {
			live++
		}
	}
	r.logger.Info("watchlist refreshed", zap.Int("symbols", len(quotes)), zap.Int("live", live))
}
