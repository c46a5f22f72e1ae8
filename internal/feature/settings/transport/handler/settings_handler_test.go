package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"quote_backend/internal/feature/settings/domain/entity"
	"quote_backend/internal/feature/settings/transport/handler"
	"quote_backend/internal/feature/settings/usecase"
)

type mockSettingsUsecase struct {
	SnapshotFunc    func(ctx context.Context) entity.Settings
	SetAPIKeyFunc   func(ctx context.Context, key string) error
	SetDemoModeFunc func(ctx context.Context, on bool) error
}

func (m *mockSettingsUsecase) Snapshot(ctx context.Context) entity.Settings {
	return m.SnapshotFunc(ctx)
}

func (m *mockSettingsUsecase) SetAPIKey(ctx context.Context, key string) error {
	return m.SetAPIKeyFunc(ctx, key)
}

func (m *mockSettingsUsecase) SetDemoMode(ctx context.Context, on bool) error {
	return m.SetDemoModeFunc(ctx, on)
}

func snapshot(context.Context) entity.Settings {
	return entity.Settings{APIKeyMasked: "****1234", KeySource: entity.KeySourceStore, DemoMode: true, Live: false}
}

func setupRouter(uc handler.SettingsUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewSettingsHandler(uc, nil)
	r := gin.New()
	r.GET("/settings", h.GetSettings)
	r.PUT("/settings", h.UpdateSettings)
	return r
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	router := setupRouter(&mockSettingsUsecase{SnapshotFunc: snapshot})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/settings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"api_key":"****1234","key_source":"store","demo_mode":true,"live":false}`, w.Body.String())
}

func TestSettingsHandler_UpdateSettings(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setKey         func(ctx context.Context, key string) error
		setDemo        func(ctx context.Context, on bool) error
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "update both",
			body: `{"api_key":"ABCDEFGH1234","demo_mode":true}`,
			setKey: func(ctx context.Context, key string) error {
				assert.Equal(t, "ABCDEFGH1234", key)
				return nil
			},
			setDemo: func(ctx context.Context, on bool) error {
				assert.True(t, on)
				return nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"api_key":"****1234","key_source":"store","demo_mode":true,"live":false}`,
		},
		{
			name: "demo mode only",
			body: `{"demo_mode":false}`,
			setKey: func(ctx context.Context, key string) error {
				t.Error("SetAPIKey should not be called")
				return nil
			},
			setDemo:        func(ctx context.Context, on bool) error { return nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid key",
			body:           `{"api_key":"DEMO_KEY"}`,
			setKey:         func(ctx context.Context, key string) error { return usecase.ErrInvalidAPIKey },
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid api key"}`,
		},
		{
			name:           "store failure",
			body:           `{"demo_mode":true}`,
			setDemo:        func(ctx context.Context, on bool) error { return errors.New("db down") },
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to update settings"}`,
		},
		{
			name:           "empty update",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"nothing to update"}`,
		},
		{
			name:           "malformed json",
			body:           `{"api_key":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockSettingsUsecase{
				SnapshotFunc:    snapshot,
				SetAPIKeyFunc:   tt.setKey,
				SetDemoModeFunc: tt.setDemo,
			}
			router := setupRouter(uc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}
