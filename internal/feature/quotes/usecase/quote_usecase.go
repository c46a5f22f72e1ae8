// Package usecase implements the quote orchestration logic: cache, quota check,
// live fetch and fallback, in that order.
package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/shared/ratelimiter"
)

// DefaultBatchDelay is the pause inserted between live fetch attempts of a batch.
const DefaultBatchDelay = 2 * time.Second

// QuoteCache memoizes live quotes per symbol.
// Get returns an entry even when it is no longer valid.
type QuoteCache interface {
	Get(symbol string) (entity.Quote, bool)
	Put(symbol string, q entity.Quote)
	IsValid(symbol string, now time.Time) bool
	Len() int
}

// UsageLimiter tracks the daily upstream quota and the provider cooldown.
type UsageLimiter interface {
	CanRequest(ctx context.Context) bool
	RecordRequest(ctx context.Context) error
	Used(ctx context.Context) int
	Remaining(ctx context.Context) int
	Quota() int
	StartCooldown()
	CooldownActive() bool
	LastRequestAt() time.Time
}

// FallbackTable is the static reference data used when no fetched data is available.
type FallbackTable interface {
	BasePrice(symbol string) float64
	CompanyName(symbol string) string
	MarketCap(symbol string, price float64) float64
}

// LiveGate reports whether live fetching is permitted at all (credential present, demo mode off).
type LiveGate interface {
	LiveEnabled(ctx context.Context) bool
}

// MarketClock reports whether the regular trading session is open at t.
type MarketClock interface {
	IsOpen(t time.Time) bool
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Dependencies groups the collaborators of QuoteUsecase.
// Gate, Random, Sleep, Now and Logger are optional.
type Dependencies struct {
	Source   QuoteSource
	Cache    QuoteCache
	Limiter  UsageLimiter
	Fallback FallbackTable
	Market   MarketClock
	Gate     LiveGate
	Random   Random
	Sleep    Sleeper
	Now      func() time.Time
	Logger   *zap.Logger
}

// QuoteUsecase answers "the best available quote for symbol X".
// Operations are serialized: at most one is in flight at a time.
type QuoteUsecase struct {
	mu sync.Mutex

	source   QuoteSource
	cache    QuoteCache
	limiter  UsageLimiter
	fallback FallbackTable
	market   MarketClock
	gate     LiveGate
	rnd      Random
	sleep    Sleeper
	now      func() time.Time
	logger   *zap.Logger

	batchDelay time.Duration
}

// NewQuoteUsecase creates a QuoteUsecase. A non-positive batchDelay uses DefaultBatchDelay.
func NewQuoteUsecase(deps Dependencies, batchDelay time.Duration) *QuoteUsecase {
	if batchDelay <= 0 {
		batchDelay = DefaultBatchDelay
	}
	uc := &QuoteUsecase{
		source:     deps.Source,
		cache:      deps.Cache,
		limiter:    deps.Limiter,
		fallback:   deps.Fallback,
		market:     deps.Market,
		gate:       deps.Gate,
		rnd:        deps.Random,
		sleep:      deps.Sleep,
		now:        deps.Now,
		logger:     deps.Logger,
		batchDelay: batchDelay,
	}
	if uc.rnd == nil {
		uc.rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	if uc.sleep == nil {
		uc.sleep = ratelimiter.Sleep
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.logger == nil {
		uc.logger = zap.NewNop()
	}
	return uc
}

// outcome is the tagged result of resolving one symbol.
// err explains why live data was not served; it is nil for live quotes and valid cache hits.
type outcome struct {
	quote     entity.Quote
	err       error
	attempted bool
}

// GetQuote returns the best available quote for symbol. It never fails: upstream
// problems degrade to cached data and then to the fallback table.
func (uc *QuoteUsecase) GetQuote(ctx context.Context, symbol string) entity.Quote {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	o := uc.resolve(ctx, entity.NormalizeSymbol(symbol), nil)
	if o.err != nil {
		uc.logger.Debug("serving degraded quote",
			zap.String("symbol", o.quote.Symbol),
			zap.String("source", string(o.quote.Source)),
			zap.Error(o.err))
	}
	return o.quote
}

// GetQuotes resolves symbols sequentially and returns one quote per symbol, in order.
// Live fetch attempts after the first are preceded by the batch delay; cache hits and
// fallbacks are not delayed. Individual failures never abort the batch.
func (uc *QuoteUsecase) GetQuotes(ctx context.Context, symbols []string) []entity.Quote {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]entity.Quote, 0, len(symbols))
	counts := make(map[entity.Source]int, 3)
	attempts := 0

	for _, raw := range symbols {
		pace := func() error {
			if attempts == 0 {
				return nil
			}
			return uc.sleep(ctx, uc.batchDelay)
		}

		o := uc.resolve(ctx, entity.NormalizeSymbol(raw), pace)
		if o.attempted {
			attempts++
		}
		if o.err != nil {
			uc.logger.Warn("quote degraded",
				zap.String("symbol", o.quote.Symbol),
				zap.String("source", string(o.quote.Source)),
				zap.Error(o.err))
		}
		counts[o.quote.Source]++
		out = append(out, o.quote)
	}

	uc.logger.Info("batch resolved",
		zap.Int("symbols", len(symbols)),
		zap.Int("live", counts[entity.SourceLive]),
		zap.Int("cached", counts[entity.SourceCached]),
		zap.Int("fallback", counts[entity.SourceFallback]),
		zap.Int("live_attempts", attempts))
	return out
}

// UsageStats reports quota usage, cache size and cooldown state.
func (uc *QuoteUsecase) UsageStats(ctx context.Context) entity.UsageStats {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	used := uc.limiter.Used(ctx)
	return entity.UsageStats{
		Used:           used,
		Limit:          uc.limiter.Quota(),
		Remaining:      uc.limiter.Remaining(ctx),
		CacheSize:      uc.cache.Len(),
		CooldownActive: uc.limiter.CooldownActive(),
		LastRequestAt:  uc.limiter.LastRequestAt(),
		MarketOpen:     uc.market.IsOpen(uc.now()),
	}
}

// resolve runs the cache → limiter → live → degrade chain for one symbol.
// beforeLive, when set, runs right before a live attempt; an error from it skips the attempt.
func (uc *QuoteUsecase) resolve(ctx context.Context, symbol string, beforeLive func() error) outcome {
	now := uc.now()

	// 1) Valid cache entry
	if symbol != "" && uc.cache.IsValid(symbol, now) {
		if q, ok := uc.cache.Get(symbol); ok {
			return outcome{quote: q}
		}
	}

	// 2) Quota, cooldown and live-mode checks
	err := uc.liveBlocked(ctx, symbol)
	if err == nil && beforeLive != nil {
		err = beforeLive()
	}

	// 3) Live fetch
	attempted := false
	if err == nil {
		attempted = true
		q, ferr := uc.fetchLive(ctx, symbol, now)
		if ferr == nil {
			return outcome{quote: q, attempted: true}
		}
		err = ferr
	}

	// 4) Stale cache, then fallback table
	return outcome{quote: uc.degrade(symbol, now), err: err, attempted: attempted}
}

func (uc *QuoteUsecase) liveBlocked(ctx context.Context, symbol string) error {
	switch {
	case symbol == "":
		return fmt.Errorf("%w: empty symbol", ErrLiveSkipped)
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %w", ErrLiveSkipped, ctx.Err())
	case uc.gate != nil && !uc.gate.LiveEnabled(ctx):
		return fmt.Errorf("%w: live mode disabled", ErrLiveSkipped)
	case uc.limiter.CooldownActive():
		return fmt.Errorf("%w: provider cooldown active", ErrLiveSkipped)
	case !uc.limiter.CanRequest(ctx):
		return fmt.Errorf("%w: daily quota exhausted", ErrLiveSkipped)
	}
	return nil
}

func (uc *QuoteUsecase) fetchLive(ctx context.Context, symbol string, now time.Time) (entity.Quote, error) {
	q, err := uc.source.Fetch(ctx, symbol)
	if err != nil {
		if KindOf(err) == KindProviderRateLimited {
			uc.limiter.StartCooldown()
			uc.logger.Warn("provider rate limit hit, cooldown started", zap.String("symbol", symbol))
		}
		return entity.Quote{}, err
	}

	if rerr := uc.limiter.RecordRequest(ctx); rerr != nil {
		// The quote is good; only the persisted counter is behind.
		uc.logger.Error("failed to record upstream request", zap.String("symbol", symbol), zap.Error(rerr))
	}

	q = uc.enrich(q, symbol, now)
	uc.cache.Put(symbol, q)

	uc.logger.Info("live quote",
		zap.String("symbol", symbol),
		zap.Float64("price", q.Price),
		zap.Float64("change", q.Change),
		zap.Int("remaining", uc.limiter.Remaining(ctx)))
	return q, nil
}

func (uc *QuoteUsecase) enrich(q entity.Quote, symbol string, now time.Time) entity.Quote {
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	if q.Name == "" {
		q.Name = uc.fallback.CompanyName(symbol)
	}
	if q.MarketCap == 0 {
		q.MarketCap = uc.fallback.MarketCap(symbol, q.Price)
	}
	if q.Timestamp.IsZero() {
		q.Timestamp = now
	}
	return q.WithSource(entity.SourceLive)
}

func (uc *QuoteUsecase) degrade(symbol string, now time.Time) entity.Quote {
	if symbol != "" {
		if q, ok := uc.cache.Get(symbol); ok {
			return q.WithSource(entity.SourceCached)
		}
	}
	return uc.synthesize(symbol, now)
}
