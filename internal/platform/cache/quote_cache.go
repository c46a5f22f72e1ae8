// Package cache holds recently fetched quotes in memory.
package cache

import (
	"container/list"
	"sync"
	"time"

	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/usecase"
)

const (
	// DefaultCapacity is the number of symbols kept before the oldest entry is evicted.
	DefaultCapacity = 100
	// DefaultWindow is the validity window for entries stored during market hours.
	DefaultWindow = 3 * time.Minute
)

var _ usecase.QuoteCache = (*QuoteCache)(nil)

type entry struct {
	symbol     string
	quote      entity.Quote
	storedAt   time.Time
	marketOpen bool
}

// QuoteCache is a bounded FIFO of quotes keyed by symbol.
// Expired entries remain readable through Get until they are evicted.
type QuoteCache struct {
	mu sync.Mutex

	capacity int
	window   time.Duration
	market   usecase.MarketClock
	now      func() time.Time

	order *list.List // front is the oldest insertion
	items map[string]*list.Element
}

// Option configures a QuoteCache.
type Option func(*QuoteCache)

// WithClock replaces the clock used to stamp insertions.
func WithClock(now func() time.Time) Option {
	return func(c *QuoteCache) { c.now = now }
}

// NewQuoteCache creates a QuoteCache. Non-positive capacity or window select the defaults.
func NewQuoteCache(capacity int, window time.Duration, market usecase.MarketClock, opts ...Option) *QuoteCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if window <= 0 {
		window = DefaultWindow
	}
	c := &QuoteCache{
		capacity: capacity,
		window:   window,
		market:   market,
		now:      time.Now,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the stored quote for symbol regardless of age.
func (c *QuoteCache) Get(symbol string) (entity.Quote, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[symbol]
	if !ok {
		return entity.Quote{}, false
	}
	return el.Value.(*entry).quote, true
}

// Put stores q as the newest entry for symbol and evicts the oldest entry when over capacity.
func (c *QuoteCache) Put(symbol string, q entity.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := &entry{
		symbol:     symbol,
		quote:      q,
		storedAt:   now,
		marketOpen: c.market.IsOpen(now),
	}

	// A re-put is a fresh insertion: the symbol moves to the back of the eviction order.
	if el, ok := c.items[symbol]; ok {
		c.order.Remove(el)
	}
	c.items[symbol] = c.order.PushBack(e)

	if c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).symbol)
	}
}

// IsValid reports whether symbol has an entry younger than its validity window at now.
func (c *QuoteCache) IsValid(symbol string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[symbol]
	if !ok {
		return false
	}
	e := el.Value.(*entry)
	return now.Sub(e.storedAt) < ValidityWindow(c.window, e.marketOpen)
}

// Len returns the number of stored entries.
func (c *QuoteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
