package di

import (
	"context"

	"go.uber.org/zap"

	"quote_backend/internal/feature/settings/adapters/ssm"
	settingsusecase "quote_backend/internal/feature/settings/usecase"
	"quote_backend/internal/platform/config"
)

// NewSettings creates the settings usecase. The SSM lookup is only configured when a
// parameter name is set; a failure to build the AWS client disables it with a warning.
func NewSettings(ctx context.Context, cfg *config.Config, store settingsusecase.Store, log *zap.Logger) *settingsusecase.SettingsUsecase {
	var secrets settingsusecase.SecretFetcher
	if cfg.SSM.Parameter != "" {
		ps, err := ssm.NewFromDefaultConfig(ctx, cfg.SSM.Region, cfg.SSM.Parameter)
		if err != nil {
			log.Warn("ssm parameter store disabled", zap.Error(err))
		} else {
			secrets = ps
		}
	}
	return settingsusecase.NewSettingsUsecase(store, cfg.AlphaVantage.APIKey, secrets, log.Named("settings"))
}
