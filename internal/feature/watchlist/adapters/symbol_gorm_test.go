package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quote_backend/internal/feature/watchlist/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database with the symbols table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, Migrate(db), "failed to migrate table")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedSymbol(t *testing.T, db *gorm.DB, code, name string, isActive bool, sortKey int) *entity.Symbol {
	t.Helper()

	symbol := &entity.Symbol{Code: code, Name: name, Market: "NASDAQ", IsActive: true, SortKey: sortKey}
	require.NoError(t, db.Create(symbol).Error, "failed to seed symbol")
	// GORM skips zero values on insert, so the default:true column needs an explicit update.
	if !isActive {
		require.NoError(t, db.Model(symbol).Update("is_active", false).Error)
	}
	return symbol
}

func TestNewSymbolRepository(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

func TestSymbolGorm_ListActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		setupFunc     func(t *testing.T, db *gorm.DB)
		expectedCodes []string
	}{
		{
			name: "active symbols sorted by sort_key",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "MSFT", "Microsoft Corporation", true, 2)
				seedSymbol(t, db, "NVDA", "NVIDIA Corporation", true, 1)
				seedSymbol(t, db, "AAPL", "Apple Inc.", true, 3)
			},
			expectedCodes: []string{"NVDA", "MSFT", "AAPL"},
		},
		{
			name: "inactive symbols are excluded",
			setupFunc: func(t *testing.T, db *gorm.DB) {
				seedSymbol(t, db, "NVDA", "NVIDIA Corporation", true, 1)
				seedSymbol(t, db, "TSLA", "Tesla, Inc.", false, 2)
			},
			expectedCodes: []string{"NVDA"},
		},
		{
			name:          "empty table",
			setupFunc:     func(t *testing.T, db *gorm.DB) {},
			expectedCodes: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			tt.setupFunc(t, db)
			repo := NewSymbolRepository(db)

			symbols, err := repo.ListActive(context.Background())
			require.NoError(t, err)
			codes := make([]string, 0, len(symbols))
			for _, s := range symbols {
				codes = append(codes, s.Code)
			}
			assert.Equal(t, tt.expectedCodes, codes)

			got, err := repo.ListActiveCodes(context.Background())
			require.NoError(t, err)
			if len(tt.expectedCodes) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.expectedCodes, got)
			}
		})
	}
}

func TestSymbolGorm_Seed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDB(t)
	repo := NewSymbolRepository(db)
	seedSymbol(t, db, "AAPL", "Apple (custom)", true, 99)

	n, err := repo.Seed(ctx, entity.DefaultWatchlist())
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	// Second run inserts nothing.
	n, err = repo.Seed(ctx, entity.DefaultWatchlist())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	codes, err := repo.ListActiveCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "META", "TSLA", "MSFT", "AMZN", "GOOGL", "AAPL"}, codes)

	var aapl entity.Symbol
	require.NoError(t, db.Where("code = ?", "AAPL").Take(&aapl).Error)
	assert.Equal(t, "Apple (custom)", aapl.Name, "existing rows are kept")
}

func TestSymbolGorm_SeedEmpty(t *testing.T) {
	t.Parallel()

	n, err := NewSymbolRepository(setupTestDB(t)).Seed(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
