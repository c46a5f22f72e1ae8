package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBuildDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "sqlite default path",
			cfg:  Config{Driver: DriverSQLite},
			want: "quotes.db",
		},
		{
			name: "sqlite explicit path",
			cfg:  Config{Path: "/var/lib/quotes/quotes.db"},
			want: "/var/lib/quotes/quotes.db",
		},
		{
			name: "postgres",
			cfg: Config{
				Driver: DriverPostgres, Host: "localhost", Port: 5432,
				User: "quotes", Password: "secret", Name: "quotes", SSLMode: "require",
			},
			want: "host=localhost port=5432 user=quotes password=secret dbname=quotes sslmode=require",
		},
		{
			name: "postgres with timezone and default sslmode",
			cfg: Config{
				Driver: DriverPostgres, Host: "db", Port: 5432,
				User: "u", Password: "p", Name: "n", TimeZone: "America/New_York",
			},
			want: "host=db port=5432 user=u password=p dbname=n sslmode=disable TimeZone=America/New_York",
		},
		{
			name:    "unknown driver",
			cfg:     Config{Driver: "mysql"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := BuildDSN(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	opener := func(dsn string) (*gorm.DB, error) {
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, time.Millisecond, opener, nil)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
}

func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		if attemptCount < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, 10*time.Millisecond, opener, nil)

	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attemptCount)
}

func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attemptCount := 0
	cause := errors.New("connection refused")
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return nil, cause
	}

	_, err := ConnectWithRetry("test-dsn", 100*time.Millisecond, 20*time.Millisecond, opener, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.GreaterOrEqual(t, attemptCount, 1)
}

func TestOpen_SQLiteMemory(t *testing.T) {
	t.Parallel()

	db, err := Open(Config{Driver: DriverSQLite, Path: ":memory:"}, nil)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	assert.NoError(t, sqlDB.Ping())
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{Driver: "oracle"}, nil)
	assert.Error(t, err)
}
