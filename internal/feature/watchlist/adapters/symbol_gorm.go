// Package adapters provides the watchlist repository implementation.
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quote_backend/internal/feature/watchlist/domain/entity"
	"quote_backend/internal/feature/watchlist/usecase"
)

// symbolGorm implements SymbolRepository on any GORM dialect.
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository creates a symbol repository over db.
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// Migrate creates or updates the symbols table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Symbol{})
}

// ListActive returns all active symbols ordered by sort_key.
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes returns only the codes of active symbols ordered by sort_key.
func (r *symbolGorm) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Seed inserts symbols whose code is not present yet and returns how many rows were added.
func (r *symbolGorm) Seed(ctx context.Context, symbols []entity.Symbol) (int64, error) {
	if len(symbols) == 0 {
		return 0, nil
	}
	rows := make([]entity.Symbol, len(symbols))
	copy(rows, symbols)

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("seed watchlist: %w", res.Error)
	}
	return res.RowsAffected, nil
}
