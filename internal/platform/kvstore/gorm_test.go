package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open in-memory db")
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second connection would see a different :memory: database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestGormStore_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewGormStore(setupTestDB(t))

	_, ok, err := s.Get(ctx, "apiKey")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "apiKey", "first"))
	require.NoError(t, s.Set(ctx, "apiKey", "second"))

	v, ok, err := s.Get(ctx, "apiKey")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestGormStore_SetMany(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)
	s := NewGormStore(db)

	require.NoError(t, s.Set(ctx, "dailyRequests", "12"))
	require.NoError(t, s.SetMany(ctx, map[string]string{
		"requestDate":   "2025-03-04",
		"dailyRequests": "0",
	}))

	v, _, err := s.Get(ctx, "dailyRequests")
	require.NoError(t, err)
	assert.Equal(t, "0", v)
	v, _, err = s.Get(ctx, "requestDate")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", v)

	var count int64
	require.NoError(t, db.Model(&Setting{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	assert.ErrorIs(t, s.SetMany(ctx, map[string]string{"": "x"}), ErrEmptyKey)
	assert.NoError(t, s.Ping(ctx))
}
