// Package ratelimiter limits upstream API usage: a persisted daily quota plus a
// transient cooldown after the provider signals throttling.
package ratelimiter

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// KeyRequestDate holds the calendar day the counter belongs to.
	KeyRequestDate = "requestDate"
	// KeyDailyRequests holds the number of upstream requests made on KeyRequestDate.
	KeyDailyRequests = "dailyRequests"

	// DefaultDailyQuota matches the free tier of the quote provider.
	DefaultDailyQuota = 25
	// DefaultCooldown is how long live requests stay blocked after a provider rate-limit signal.
	DefaultCooldown = 60 * time.Second

	dayLayout = "2006-01-02"
)

// Store persists string scalars across restarts.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
}

// Config configures a DailyQuota. Zero values select the defaults.
type Config struct {
	Quota    int
	Cooldown time.Duration
	Location *time.Location   // Calendar used for the day rollover; defaults to time.Local
	Now      func() time.Time // Clock; defaults to time.Now
}

// DailyQuota tracks upstream requests per calendar day against a fixed quota.
// The counter is the only state that survives restarts; the cooldown is in-memory.
type DailyQuota struct {
	mu sync.Mutex

	store    Store
	quota    int
	cooldown time.Duration
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger

	cooldownUntil time.Time
	lastRequest   time.Time
}

// NewDailyQuota creates a DailyQuota backed by store.
func NewDailyQuota(store Store, cfg Config, logger *zap.Logger) *DailyQuota {
	if cfg.Quota <= 0 {
		cfg.Quota = DefaultDailyQuota
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyQuota{
		store:    store,
		quota:    cfg.Quota,
		cooldown: cfg.Cooldown,
		loc:      cfg.Location,
		now:      cfg.Now,
		logger:   logger,
	}
}

// Quota returns the daily limit.
func (d *DailyQuota) Quota() int { return d.quota }

// CanRequest reports whether a live request is permitted now.
// It is false while a cooldown is active, once today's count reaches the quota,
// or when the counter cannot be read.
func (d *DailyQuota) CanRequest(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cooldownActiveLocked() {
		return false
	}
	n, err := d.countLocked(ctx)
	if err != nil {
		d.logger.Error("failed to read request counter", zap.Error(err))
		return false
	}
	return n < d.quota
}

// RecordRequest increments today's counter.
func (d *DailyQuota) RecordRequest(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.countLocked(ctx)
	if err != nil {
		return err
	}
	n++
	if err := d.store.Set(ctx, KeyDailyRequests, strconv.Itoa(n)); err != nil {
		return err
	}
	d.lastRequest = d.now()

	d.logger.Debug("upstream request recorded", zap.Int("used", n), zap.Int("quota", d.quota))
	return nil
}

// Used returns today's count, 0 when it cannot be read.
func (d *DailyQuota) Used(ctx context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.countLocked(ctx)
	if err != nil {
		d.logger.Error("failed to read request counter", zap.Error(err))
		return 0
	}
	return n
}

// Remaining returns how many requests are left today.
func (d *DailyQuota) Remaining(ctx context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.countLocked(ctx)
	if err != nil {
		d.logger.Error("failed to read request counter", zap.Error(err))
		return 0
	}
	if n >= d.quota {
		return 0
	}
	return d.quota - n
}

// StartCooldown blocks live requests for the configured cooldown.
func (d *DailyQuota) StartCooldown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cooldownUntil = d.now().Add(d.cooldown)
}

// CooldownActive reports whether a cooldown is in effect. It clears on its own.
func (d *DailyQuota) CooldownActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cooldownActiveLocked()
}

// LastRequestAt returns when the last request was recorded by this process.
func (d *DailyQuota) LastRequestAt() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastRequest
}

func (d *DailyQuota) cooldownActiveLocked() bool {
	return d.now().Before(d.cooldownUntil)
}

// countLocked returns today's count, resetting the persisted counter first when the
// stored day is not today.
func (d *DailyQuota) countLocked(ctx context.Context) (int, error) {
	today := d.now().In(d.loc).Format(dayLayout)

	stored, ok, err := d.store.Get(ctx, KeyRequestDate)
	if err != nil {
		return 0, err
	}
	if !ok || stored != today {
		if err := d.store.SetMany(ctx, map[string]string{
			KeyRequestDate:   today,
			KeyDailyRequests: "0",
		}); err != nil {
			return 0, err
		}
		if ok {
			d.logger.Info("daily request counter reset", zap.String("previous_day", stored), zap.String("day", today))
		}
		return 0, nil
	}

	raw, ok, err := d.store.Get(ctx, KeyDailyRequests)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		d.logger.Warn("ignoring malformed request counter", zap.String("value", raw))
		return 0, nil
	}
	return n, nil
}
