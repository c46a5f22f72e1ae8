// Package config loads application configuration with Viper: built-in defaults, an
// optional config.yaml, then environment variables (e.g. QUOTES_DAILY_QUOTA).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"quote_backend/internal/platform/db"
	"quote_backend/internal/platform/redis"
)

// Store backends for persisted counters and settings.
const (
	StoreGorm   = "gorm"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	HTTP         HTTPConfig         `mapstructure:"http"`
	Log          LogConfig          `mapstructure:"log"`
	AlphaVantage AlphaVantageConfig `mapstructure:"alphavantage"`
	Quotes       QuotesConfig       `mapstructure:"quotes"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Refresh      RefreshConfig      `mapstructure:"refresh"`
	Store        StoreConfig        `mapstructure:"store"`
	Database     db.Config          `mapstructure:"database"`
	Redis        redis.Config       `mapstructure:"redis"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	SSM          SSMConfig          `mapstructure:"ssm"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	RatePerSecond   float64       `mapstructure:"rate_per_second"`
	Burst           int           `mapstructure:"burst"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig defines the logger options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // debug, info, warn, error
	Format      string `mapstructure:"format"`      // json or console
	OutputFile  string `mapstructure:"output_file"` // optional rotated log file
	Environment string `mapstructure:"environment"` // dev or prod
}

type AlphaVantageConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

type QuotesConfig struct {
	DailyQuota     int           `mapstructure:"daily_quota"`
	Cooldown       time.Duration `mapstructure:"cooldown"`
	BatchDelay     time.Duration `mapstructure:"batch_delay"`
	FallbackFile   string        `mapstructure:"fallback_file"`
	MarketLocation string        `mapstructure:"market_location"`
}

type CacheConfig struct {
	Capacity int           `mapstructure:"capacity"`
	Window   time.Duration `mapstructure:"window"`
}

type RefreshConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	OpenInterval   time.Duration `mapstructure:"open_interval"`
	ClosedInterval time.Duration `mapstructure:"closed_interval"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"` // gorm | redis | memory
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type SSMConfig struct {
	Parameter string `mapstructure:"parameter"` // empty disables the lookup
	Region    string `mapstructure:"region"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.rate_per_second", 5.0)
	v.SetDefault("http.burst", 10)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "prod")

	v.SetDefault("alphavantage.base_url", "https://www.alphavantage.co")
	v.SetDefault("alphavantage.api_key", "")
	v.SetDefault("alphavantage.timeout", 15*time.Second)
	v.SetDefault("alphavantage.user_agent", "")

	v.SetDefault("quotes.daily_quota", 25)
	v.SetDefault("quotes.cooldown", 60*time.Second)
	v.SetDefault("quotes.batch_delay", 2*time.Second)
	v.SetDefault("quotes.fallback_file", "")
	v.SetDefault("quotes.market_location", "America/New_York")

	v.SetDefault("cache.capacity", 100)
	v.SetDefault("cache.window", 3*time.Minute)

	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.open_interval", 5*time.Minute)
	v.SetDefault("refresh.closed_interval", 10*time.Minute)

	v.SetDefault("store.backend", StoreGorm)

	v.SetDefault("database.driver", db.DriverSQLite)
	v.SetDefault("database.path", "quotes.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "quotes")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "")
	v.SetDefault("database.connect_timeout", 60*time.Second)
	v.SetDefault("database.max_open_conns", 0)
	v.SetDefault("database.max_idle_conns", 0)
	v.SetDefault("database.conn_max_lifetime", 0)
	v.SetDefault("database.log_sql", false)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "quote_backend")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", time.Hour)

	v.SetDefault("ssm.parameter", "")
	v.SetDefault("ssm.region", "")
}

// Load reads configuration. An empty path looks for config.yaml in . and ./config and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Backend {
	case StoreGorm, StoreRedis, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend))
	}
	if c.Quotes.DailyQuota <= 0 {
		errs = append(errs, fmt.Errorf("quotes.daily_quota: must be positive, got %d", c.Quotes.DailyQuota))
	}
	if c.Cache.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("cache.capacity: must be positive, got %d", c.Cache.Capacity))
	}
	if c.Cache.Window <= 0 {
		errs = append(errs, fmt.Errorf("cache.window: must be positive, got %v", c.Cache.Window))
	}
	if c.Quotes.BatchDelay < 0 {
		errs = append(errs, fmt.Errorf("quotes.batch_delay: must not be negative, got %v", c.Quotes.BatchDelay))
	}
	if c.AlphaVantage.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("alphavantage.timeout: must be positive, got %v", c.AlphaVantage.Timeout))
	}
	return errors.Join(errs...)
}
