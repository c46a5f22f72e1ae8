// Package handler provides the HTTP handlers of the quotes feature.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/transport/http/dto"
	"quote_backend/internal/platform/http/response"
)

// MaxBatchSymbols bounds GET /quotes?symbols=...
const MaxBatchSymbols = 25

// QuotesUsecase is the orchestrator as seen by the handler.
type QuotesUsecase interface {
	GetQuote(ctx context.Context, symbol string) entity.Quote
	GetQuotes(ctx context.Context, symbols []string) []entity.Quote
	UsageStats(ctx context.Context) entity.UsageStats
}

// WatchlistReader supplies the default symbols of a batch request.
type WatchlistReader interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
}

// QuotesHandler serves quotes and usage.
type QuotesHandler struct {
	uc        QuotesUsecase
	watchlist WatchlistReader
	logger    *zap.Logger
}

// NewQuotesHandler creates a QuotesHandler.
func NewQuotesHandler(uc QuotesUsecase, watchlist WatchlistReader, logger *zap.Logger) *QuotesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotesHandler{uc: uc, watchlist: watchlist, logger: logger}
}

// GetQuote returns the best available quote for one symbol.
//
// GET /quotes/:symbol
func (h *QuotesHandler) GetQuote(c *gin.Context) {
	symbol := entity.NormalizeSymbol(c.Param("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "symbol is required"})
		return
	}
	q := h.uc.GetQuote(c.Request.Context(), symbol)
	c.JSON(http.StatusOK, dto.NewQuoteResponse(q))
}

// GetQuotes resolves a comma-separated list, or the active watchlist when none is given.
//
// GET /quotes?symbols=AAPL,MSFT
func (h *QuotesHandler) GetQuotes(c *gin.Context) {
	symbols := splitSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		codes, err := h.watchlist.ListActiveCodes(c.Request.Context())
		if err != nil {
			h.logger.Error("failed to load watchlist", zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to load watchlist"})
			return
		}
		symbols = codes
	}
	if len(symbols) > MaxBatchSymbols {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "too many symbols"})
		return
	}

	quotes := h.uc.GetQuotes(c.Request.Context(), symbols)
	out := make([]dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, dto.NewQuoteResponse(q))
	}
	c.JSON(http.StatusOK, out)
}

// GetUsage reports the daily quota and cache state.
//
// GET /usage
func (h *QuotesHandler) GetUsage(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewUsageResponse(h.uc.UsageStats(c.Request.Context())))
}

// splitSymbols parses "a, B,,c" into [A B C], dropping blanks and duplicates.
func splitSymbols(raw string) []string {
	if raw == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		s := entity.NormalizeSymbol(part)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
