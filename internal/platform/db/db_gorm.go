// Package db opens the GORM connection used by the settings store and the watchlist.
package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// DefaultRetryInterval is the pause between connection attempts.
	DefaultRetryInterval = 3 * time.Second
)

// Config describes the database connection.
type Config struct {
	Driver   string `mapstructure:"driver"` // sqlite | postgres
	Path     string `mapstructure:"path"`   // SQLite file, ":memory:" allowed
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`

	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogSQL          bool          `mapstructure:"log_sql"`
}

// Opener opens a GORM connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN returns the driver-specific DSN for cfg.
func BuildDSN(cfg Config) (string, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		if cfg.Path == "" {
			return "quotes.db", nil
		}
		return cfg.Path, nil
	case DriverPostgres:
		sslmode := cfg.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslmode)
		if cfg.TimeZone != "" {
			dsn += fmt.Sprintf(" TimeZone=%s", cfg.TimeZone)
		}
		return dsn, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewOpener returns the Opener for cfg.Driver.
func NewOpener(cfg Config) (Opener, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.LogSQL {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	switch cfg.Driver {
	case DriverSQLite, "":
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }, nil
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Open connects with retries until cfg.ConnectTimeout (default 60s) and applies pool limits.
func Open(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dsn, err := BuildDSN(cfg)
	if err != nil {
		return nil, err
	}
	opener, err := NewOpener(cfg)
	if err != nil {
		return nil, err
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	db, err := ConnectWithRetry(dsn, timeout, DefaultRetryInterval, opener, log)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isMemory(cfg) {
		// Every new connection to ":memory:" is a separate empty database.
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Info("database connected", zap.String("driver", driverName(cfg)))
	return db, nil
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout, interval time.Duration, opener Opener, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(interval).After(deadline) {
			return nil, errors.Join(fmt.Errorf("database connect failed after %v", timeout), err)
		}
		log.Warn("database connect failed, retrying", zap.Error(err), zap.Duration("in", interval))
		time.Sleep(interval)
	}
}

func isMemory(cfg Config) bool {
	return driverName(cfg) == DriverSQLite && strings.Contains(cfg.Path, ":memory:")
}

func driverName(cfg Config) string {
	if cfg.Driver == "" {
		return DriverSQLite
	}
	return cfg.Driver
}
