// Package handler provides the HTTP handlers of the watchlist feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quote_backend/internal/feature/watchlist/domain/entity"
	"quote_backend/internal/feature/watchlist/transport/http/dto"
	"quote_backend/internal/platform/http/response"
)

// SymbolUsecase is the watchlist logic as seen by the handler.
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler serves the watchlist.
type SymbolHandler struct {
	uc     SymbolUsecase
	logger *zap.Logger
}

// NewSymbolHandler creates a SymbolHandler.
func NewSymbolHandler(uc SymbolUsecase, logger *zap.Logger) *SymbolHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SymbolHandler{uc: uc, logger: logger}
}

// List returns the active watchlist in display order.
//
// GET /symbols
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list symbols", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to list symbols"})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name, Market: s.Market})
	}
	c.JSON(http.StatusOK, out)
}
