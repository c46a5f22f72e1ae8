// Package usecase implements the watchlist operations.
package usecase

import (
	"context"

	"quote_backend/internal/feature/watchlist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for watchlist symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	Seed(ctx context.Context, symbols []entity.Symbol) (int64, error)
}

// WatchlistUsecase provides the tracked symbols.
type WatchlistUsecase struct {
	repo SymbolRepository
}

// NewWatchlistUsecase creates a new WatchlistUsecase with the given repository.
func NewWatchlistUsecase(r SymbolRepository) *WatchlistUsecase {
	return &WatchlistUsecase{repo: r}
}

// ListActiveSymbols returns the active symbols ordered by sort key.
func (u *WatchlistUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// ListActiveCodes returns the active ticker codes ordered by sort key.
func (u *WatchlistUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	return u.repo.ListActiveCodes(ctx)
}

// SeedDefaults inserts the default watchlist, keeping existing rows. It returns the number inserted.
func (u *WatchlistUsecase) SeedDefaults(ctx context.Context) (int64, error) {
	return u.repo.Seed(ctx, entity.DefaultWatchlist())
}
