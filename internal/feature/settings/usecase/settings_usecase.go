// Package usecase resolves the provider credential and the demo-mode switch.
package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"quote_backend/internal/feature/settings/domain/entity"
)

const (
	// KeyAPIKey is the persisted API key.
	KeyAPIKey = "apiKey"
	// KeyDemoMode is the persisted demo-mode flag ("true"/"false").
	KeyDemoMode = "demoModeSelected"
)

// placeholders are shipped sample values that never authenticate.
var placeholders = map[string]struct{}{
	"DEMO_KEY":            {},
	"ENTER_YOUR_KEY_HERE": {},
}

var apiKeyPattern = regexp.MustCompile(`^[A-Za-z0-9]{8,64}$`)

// Store persists settings as strings.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// SecretFetcher reads the API key from a secret manager.
type SecretFetcher interface {
	APIKey(ctx context.Context) (string, error)
}

// SettingsUsecase owns the apiKey and demoModeSelected settings.
type SettingsUsecase struct {
	store     Store
	configKey string
	secrets   SecretFetcher
	logger    *zap.Logger

	mu         sync.Mutex
	secretKey  string
	secretRead bool
}

// NewSettingsUsecase creates a SettingsUsecase. configKey is the key from configuration or
// the environment; secrets may be nil.
func NewSettingsUsecase(store Store, configKey string, secrets SecretFetcher, logger *zap.Logger) *SettingsUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsUsecase{
		store:     store,
		configKey: strings.TrimSpace(configKey),
		secrets:   secrets,
		logger:    logger,
	}
}

// IsPlaceholder reports whether key counts as unset.
func IsPlaceholder(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}
	_, ok := placeholders[strings.ToUpper(key)]
	return ok
}

// APIKey returns the first usable key from the store, the configuration and the secret
// manager, in that order. It returns "" when none is configured.
func (u *SettingsUsecase) APIKey(ctx context.Context) (string, error) {
	key, _ := u.resolve(ctx)
	return key, nil
}

func (u *SettingsUsecase) resolve(ctx context.Context) (string, entity.KeySource) {
	stored, ok, err := u.store.Get(ctx, KeyAPIKey)
	if err != nil {
		u.logger.Warn("failed to read stored api key", zap.Error(err))
	} else if ok && !IsPlaceholder(stored) {
		return stored, entity.KeySourceStore
	}

	if !IsPlaceholder(u.configKey) {
		return u.configKey, entity.KeySourceConfig
	}

	if key := u.secretAPIKey(ctx); !IsPlaceholder(key) {
		return key, entity.KeySourceSSM
	}
	return "", entity.KeySourceNone
}

// secretAPIKey reads the secret manager once per process; failures are retried on the next call.
func (u *SettingsUsecase) secretAPIKey(ctx context.Context) string {
	if u.secrets == nil {
		return ""
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.secretRead {
		return u.secretKey
	}
	key, err := u.secrets.APIKey(ctx)
	if err != nil {
		u.logger.Warn("failed to read api key from parameter store", zap.Error(err))
		return ""
	}
	u.secretKey = strings.TrimSpace(key)
	u.secretRead = true
	return u.secretKey
}

// DemoMode reports whether the user selected demo mode. Read failures count as off.
func (u *SettingsUsecase) DemoMode(ctx context.Context) bool {
	raw, ok, err := u.store.Get(ctx, KeyDemoMode)
	if err != nil {
		u.logger.Warn("failed to read demo mode", zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	on, err := strconv.ParseBool(raw)
	return err == nil && on
}

// LiveEnabled reports whether live fetching is allowed: a key is configured and demo mode is off.
func (u *SettingsUsecase) LiveEnabled(ctx context.Context) bool {
	if u.DemoMode(ctx) {
		return false
	}
	key, _ := u.resolve(ctx)
	return key != ""
}

// SetAPIKey validates and persists key. An empty key clears the stored value.
func (u *SettingsUsecase) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key != "" && (IsPlaceholder(key) || !apiKeyPattern.MatchString(key)) {
		return ErrInvalidAPIKey
	}
	if err := u.store.Set(ctx, KeyAPIKey, key); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	u.logger.Info("api key updated", zap.Bool("cleared", key == ""))
	return nil
}

// SetDemoMode persists the demo-mode switch.
func (u *SettingsUsecase) SetDemoMode(ctx context.Context, on bool) error {
	if err := u.store.Set(ctx, KeyDemoMode, strconv.FormatBool(on)); err != nil {
		return fmt.Errorf("save demo mode: %w", err)
	}
	u.logger.Info("demo mode updated", zap.Bool("demo_mode", on))
	return nil
}

// Validate returns ErrCredentialMissing when live data is expected but no key exists.
func (u *SettingsUsecase) Validate(ctx context.Context) error {
	if u.DemoMode(ctx) {
		return nil
	}
	if key, _ := u.resolve(ctx); key == "" {
		return ErrCredentialMissing
	}
	return nil
}

// Snapshot returns the current settings with the key masked.
func (u *SettingsUsecase) Snapshot(ctx context.Context) entity.Settings {
	key, source := u.resolve(ctx)
	demo := u.DemoMode(ctx)
	return entity.Settings{
		APIKeyMasked: Mask(key),
		KeySource:    source,
		DemoMode:     demo,
		Live:         key != "" && !demo,
	}
}

// Mask hides all but the last four characters of key.
func Mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
