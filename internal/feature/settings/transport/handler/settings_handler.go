// Package handler provides the HTTP handlers of the settings feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quote_backend/internal/feature/settings/domain/entity"
	"quote_backend/internal/feature/settings/transport/http/dto"
	"quote_backend/internal/feature/settings/usecase"
	"quote_backend/internal/platform/http/response"
	jwtmw "quote_backend/internal/platform/jwt"
)

// SettingsUsecase is the settings logic as seen by the handler.
type SettingsUsecase interface {
	Snapshot(ctx context.Context) entity.Settings
	SetAPIKey(ctx context.Context, key string) error
	SetDemoMode(ctx context.Context, on bool) error
}

// SettingsHandler serves the live-data settings.
type SettingsHandler struct {
	uc     SettingsUsecase
	logger *zap.Logger
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(uc SettingsUsecase, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{uc: uc, logger: logger}
}

// GetSettings returns the masked settings.
//
// GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSettingsResponse(h.uc.Snapshot(c.Request.Context())))
}

// UpdateSettings applies a partial update and returns the new settings.
//
// PUT /settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request"})
		return
	}
	if req.APIKey == nil && req.DemoMode == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "nothing to update"})
		return
	}

	ctx := c.Request.Context()
	if req.APIKey != nil {
		if err := h.uc.SetAPIKey(ctx, *req.APIKey); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.DemoMode != nil {
		if err := h.uc.SetDemoMode(ctx, *req.DemoMode); err != nil {
			h.fail(c, err)
			return
		}
	}

	h.logger.Info("settings updated",
		zap.String("subject", c.GetString(jwtmw.ContextSubject)),
		zap.Bool("api_key", req.APIKey != nil),
		zap.Bool("demo_mode", req.DemoMode != nil))
	c.JSON(http.StatusOK, dto.NewSettingsResponse(h.uc.Snapshot(ctx)))
}

func (h *SettingsHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrInvalidAPIKey) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	h.logger.Error("failed to update settings", zap.Error(err))
	c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "failed to update settings"})
}
