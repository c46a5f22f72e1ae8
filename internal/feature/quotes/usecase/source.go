package usecase

import (
	"context"

	"quote_backend/internal/feature/quotes/domain/entity"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// QuoteSource performs a single upstream fetch for one symbol.
// Implementations must not retry and must report failures as *UpstreamError.
type QuoteSource interface {
	Fetch(ctx context.Context, symbol string) (entity.Quote, error)
}
