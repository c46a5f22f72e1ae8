package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is one persisted key/value row.
type Setting struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name.
func (Setting) TableName() string { return "settings" }

// GormStore keeps values in the settings table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore. The settings table must exist (see Migrate).
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the settings table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Setting{})
}

// Get returns the value for key. A missing row is not an error.
func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row Setting
	err := s.db.WithContext(ctx).Where("name = ?", key).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: load setting %q: %w", ErrUnavailable, key, err)
	}
	return row.Value, true, nil
}

// Set upserts value under key.
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return upsert(s.db.WithContext(ctx), key, value)
}

// SetMany upserts all values in one transaction.
func (s *GormStore) SetMany(ctx context.Context, values map[string]string) error {
	for k := range values {
		if k == "" {
			return ErrEmptyKey
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range values {
			if err := upsert(tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Ping checks the underlying connection.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func upsert(tx *gorm.DB, key, value string) error {
	row := Setting{Name: key, Value: value}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("%w: save setting %q: %w", ErrUnavailable, key, err)
	}
	return nil
}
