package di

import (
	"go.uber.org/zap"

	"quote_backend/internal/feature/quotes/adapters/alphavantage"
	"quote_backend/internal/feature/quotes/adapters/fallback"
	quoteusecase "quote_backend/internal/feature/quotes/usecase"
	"quote_backend/internal/platform/cache"
	"quote_backend/internal/platform/config"
	infrahttp "quote_backend/internal/platform/http"
)

// QuoteDeps are the collaborators built elsewhere.
type QuoteDeps struct {
	Keys    alphavantage.KeyProvider
	Gate    quoteusecase.LiveGate
	Limiter quoteusecase.UsageLimiter
	Market  quoteusecase.MarketClock
}

// NewQuoteSource creates the Alpha Vantage client with the shared outbound HTTP client.
func NewQuoteSource(cfg config.AlphaVantageConfig, keys alphavantage.KeyProvider, log *zap.Logger) *alphavantage.Client {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, cfg.UserAgent)
	return alphavantage.NewClient(alphavantage.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, httpClient, keys, log)
}

// NewFallbackTable returns the configured fallback table or the built-in one.
func NewFallbackTable(path string) (*fallback.Table, error) {
	if path == "" {
		return fallback.DefaultTable(), nil
	}
	return fallback.LoadTable(path)
}

// NewQuoteUsecase wires source, cache and fallback table into the orchestrator.
func NewQuoteUsecase(cfg *config.Config, deps QuoteDeps, log *zap.Logger) (*quoteusecase.QuoteUsecase, error) {
	table, err := NewFallbackTable(cfg.Quotes.FallbackFile)
	if err != nil {
		return nil, err
	}
	return quoteusecase.NewQuoteUsecase(quoteusecase.Dependencies{
		Source:   NewQuoteSource(cfg.AlphaVantage, deps.Keys, log.Named("alphavantage")),
		Cache:    cache.NewQuoteCache(cfg.Cache.Capacity, cfg.Cache.Window, deps.Market),
		Limiter:  deps.Limiter,
		Fallback: table,
		Market:   deps.Market,
		Gate:     deps.Gate,
		Logger:   log.Named("quotes"),
	}, cfg.Quotes.BatchDelay), nil
}
