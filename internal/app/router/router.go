// Package router assembles the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	quoteshandler "quote_backend/internal/feature/quotes/transport/handler"
	settingshandler "quote_backend/internal/feature/settings/transport/handler"
	watchlisthandler "quote_backend/internal/feature/watchlist/transport/handler"
	"quote_backend/internal/platform/http/handler"
	"quote_backend/internal/platform/http/middleware"
	jwtmw "quote_backend/internal/platform/jwt"
)

// Handlers groups the feature handlers served by the router.
type Handlers struct {
	Quotes    *quoteshandler.QuotesHandler
	Settings  *settingshandler.SettingsHandler
	Watchlist *watchlisthandler.SymbolHandler
	Live      handler.LiveReporter
}

// Options configures the shared middleware.
type Options struct {
	JWTSecret string
	Limiter   *middleware.ClientLimiter // nil disables per-client limiting
	Logger    *zap.Logger
}

// NewRouter registers every route on a new engine.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(opts.Logger))
	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter))
	}

	health := handler.Health(h.Live)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	r.GET("/quotes", h.Quotes.GetQuotes)
	r.GET("/quotes/:symbol", h.Quotes.GetQuote)
	r.GET("/usage", h.Quotes.GetUsage)
	r.GET("/symbols", h.Watchlist.List)
	r.GET("/settings", h.Settings.GetSettings)

	// Writes require an operator token issued by `quotectl token`.
	admin := r.Group("/")
	admin.Use(jwtmw.AuthRequired(opts.JWTSecret, jwtmw.ScopeSettingsWrite))
	{
		admin.PUT("/settings", h.Settings.UpdateSettings)
	}

	return r
}
