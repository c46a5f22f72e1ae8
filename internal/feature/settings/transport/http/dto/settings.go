// Package dto defines the JSON shapes of the settings endpoints.
package dto

import "quote_backend/internal/feature/settings/domain/entity"

// SettingsResponse is the masked view of the settings.
type SettingsResponse struct {
	APIKey    string `json:"api_key"`
	KeySource string `json:"key_source"`
	DemoMode  bool   `json:"demo_mode"`
	Live      bool   `json:"live"`
}

// UpdateSettingsRequest is a partial update; omitted fields are left unchanged.
type UpdateSettingsRequest struct {
	APIKey   *string `json:"api_key"`
	DemoMode *bool   `json:"demo_mode"`
}

// NewSettingsResponse converts a settings snapshot.
func NewSettingsResponse(s entity.Settings) SettingsResponse {
	return SettingsResponse{
		APIKey:    s.APIKeyMasked,
		KeySource: string(s.KeySource),
		DemoMode:  s.DemoMode,
		Live:      s.Live,
	}
}
