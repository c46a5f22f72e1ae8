// Package di builds the application's components from configuration.
package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"quote_backend/internal/app/router"
	quoteshandler "quote_backend/internal/feature/quotes/transport/handler"
	quoteusecase "quote_backend/internal/feature/quotes/usecase"
	settingshandler "quote_backend/internal/feature/settings/transport/handler"
	settingsusecase "quote_backend/internal/feature/settings/usecase"
	watchlistadapters "quote_backend/internal/feature/watchlist/adapters"
	watchlisthandler "quote_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "quote_backend/internal/feature/watchlist/usecase"
	"quote_backend/internal/platform/config"
	"quote_backend/internal/platform/db"
	"quote_backend/internal/platform/http/middleware"
	"quote_backend/internal/platform/kvstore"
	"quote_backend/internal/platform/market"
	"quote_backend/internal/shared/ratelimiter"
)

// App holds the wired components of one process.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	DB    *gorm.DB
	Redis *goredis.Client
	Store Store

	Market    *market.Hours
	Limiter   *ratelimiter.DailyQuota
	Settings  *settingsusecase.SettingsUsecase
	Quotes    *quoteusecase.QuoteUsecase
	Watchlist *watchlistusecase.WatchlistUsecase
	Refresher *quoteusecase.Refresher

	closers []func() error
}

// New opens the database and the settings store, seeds the watchlist and builds the
// quote pipeline. Call Close when done.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: log}

	hours, err := market.NewHours(cfg.Quotes.MarketLocation)
	if err != nil {
		return nil, err
	}
	a.Market = hours

	if err := a.openDatabase(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	store, err := a.openStore(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Store = store

	a.Watchlist = watchlistusecase.NewWatchlistUsecase(watchlistadapters.NewSymbolRepository(a.DB))
	if n, err := a.Watchlist.SeedDefaults(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("seed watchlist: %w", err)
	} else if n > 0 {
		log.Info("watchlist seeded", zap.Int64("symbols", n))
	}

	a.Settings = NewSettings(ctx, cfg, store, log)

	a.Limiter = ratelimiter.NewDailyQuota(store, ratelimiter.Config{
		Quota:    cfg.Quotes.DailyQuota,
		Cooldown: cfg.Quotes.Cooldown,
		Location: hours.Location(),
	}, log.Named("quota"))

	quotes, err := NewQuoteUsecase(cfg, QuoteDeps{
		Keys:    a.Settings,
		Gate:    a.Settings,
		Limiter: a.Limiter,
		Market:  hours,
	}, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Quotes = quotes

	a.Refresher = quoteusecase.NewRefresher(a.Quotes, a.Watchlist, hours,
		cfg.Refresh.OpenInterval, cfg.Refresh.ClosedInterval, log.Named("refresher"))

	return a, nil
}

func (a *App) openDatabase(ctx context.Context) error {
	gdb, err := db.Open(a.Config.Database, a.Logger)
	if err != nil {
		return err
	}
	a.DB = gdb
	a.closers = append(a.closers, func() error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})

	gdb = gdb.WithContext(ctx)
	if err := kvstore.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate settings: %w", err)
	}
	if err := watchlistadapters.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate symbols: %w", err)
	}
	return nil
}

// NewRouter builds the HTTP handlers and the gin engine.
func (a *App) NewRouter() *gin.Engine {
	var limiter *middleware.ClientLimiter
	if a.Config.HTTP.RatePerSecond > 0 {
		limiter = middleware.NewClientLimiter(a.Config.HTTP.RatePerSecond, a.Config.HTTP.Burst)
	}
	return router.NewRouter(router.Handlers{
		Quotes:    quoteshandler.NewQuotesHandler(a.Quotes, a.Watchlist, a.Logger.Named("quotes")),
		Settings:  settingshandler.NewSettingsHandler(a.Settings, a.Logger.Named("settings")),
		Watchlist: watchlisthandler.NewSymbolHandler(a.Watchlist, a.Logger.Named("watchlist")),
		Live:      a.Settings,
	}, router.Options{
		JWTSecret: a.Config.JWT.Secret,
		Limiter:   limiter,
		Logger:    a.Logger.Named("http"),
	})
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
