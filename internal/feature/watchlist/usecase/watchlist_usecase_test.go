package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote_backend/internal/feature/watchlist/domain/entity"
	"quote_backend/internal/feature/watchlist/usecase"
)

type mockSymbolRepository struct {
	ListActiveFunc      func(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodesFunc func(ctx context.Context) ([]string, error)
	SeedFunc            func(ctx context.Context, symbols []entity.Symbol) (int64, error)
}

func (m *mockSymbolRepository) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockSymbolRepository) ListActiveCodes(ctx context.Context) ([]string, error) {
	if m.ListActiveCodesFunc != nil {
		return m.ListActiveCodesFunc(ctx)
	}
	return nil, nil
}

func (m *mockSymbolRepository) Seed(ctx context.Context, symbols []entity.Symbol) (int64, error) {
	if m.SeedFunc != nil {
		return m.SeedFunc(ctx, symbols)
	}
	return 0, nil
}

func TestWatchlistUsecase_ListActiveSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mockList func(ctx context.Context) ([]entity.Symbol, error)
		want     []entity.Symbol
		wantErr  bool
	}{
		{
			name: "success",
			mockList: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{{Code: "NVDA", Name: "NVIDIA Corporation"}}, nil
			},
			want: []entity.Symbol{{Code: "NVDA", Name: "NVIDIA Corporation"}},
		},
		{
			name: "repository error",
			mockList: func(ctx context.Context) ([]entity.Symbol, error) {
				return nil, errors.New("db down")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewWatchlistUsecase(&mockSymbolRepository{ListActiveFunc: tt.mockList})
			got, err := uc.ListActiveSymbols(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatchlistUsecase_ListActiveCodes(t *testing.T) {
	t.Parallel()

	uc := usecase.NewWatchlistUsecase(&mockSymbolRepository{
		ListActiveCodesFunc: func(ctx context.Context) ([]string, error) { return []string{"NVDA", "META"}, nil },
	})
	got, err := uc.ListActiveCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA", "META"}, got)
}

func TestWatchlistUsecase_SeedDefaults(t *testing.T) {
	t.Parallel()

	var seeded []entity.Symbol
	uc := usecase.NewWatchlistUsecase(&mockSymbolRepository{
		SeedFunc: func(ctx context.Context, symbols []entity.Symbol) (int64, error) {
			seeded = symbols
			return int64(len(symbols)), nil
		},
	})

	n, err := uc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	codes := make([]string, 0, len(seeded))
	for _, s := range seeded {
		codes = append(codes, s.Code)
	}
	assert.Equal(t, []string{"NVDA", "META", "TSLA", "AAPL", "MSFT", "AMZN", "GOOGL"}, codes)
}
