package usecase

import (
	"time"

	"quote_backend/internal/feature/quotes/domain/entity"
)

const (
	// fallbackVolatility bounds the cosmetic perturbation applied to fallback prices.
	fallbackVolatility = 0.02

	fallbackMinVolume  = 1_000_000
	fallbackVolumeSpan = 50_000_000
)

// Random supplies uniform values in [0, 1). *math/rand/v2.Rand satisfies it.
type Random interface {
	Float64() float64
}

// Perturb moves base by a factor derived from u in [0, 1): the result stays within
// ±2% of base. It returns the perturbed price, the absolute change and the change in percent.
func Perturb(base, u float64) (price, change, changePercent float64) {
	if u < 0 {
		u = 0
	}
	if u >= 1 {
		u = 0.999999
	}
	delta := (u - 0.5) * fallbackVolatility * 2
	price = base * (1 + delta)
	change = price - base
	if base != 0 {
		changePercent = change / base * 100
	}
	return price, change, changePercent
}

// synthesize builds a fallback quote for symbol.
func (uc *QuoteUsecase) synthesize(symbol string, now time.Time) entity.Quote {
	base := uc.fallback.BasePrice(symbol)
	price, change, pct := Perturb(base, uc.rnd.Float64())
	volume := int64(fallbackMinVolume + uc.rnd.Float64()*fallbackVolumeSpan)

	return entity.Quote{
		Symbol:        symbol,
		Name:          uc.fallback.CompanyName(symbol),
		Price:         price,
		Change:        change,
		ChangePercent: pct,
		Volume:        volume,
		PreviousClose: base,
		MarketCap:     uc.fallback.MarketCap(symbol, price),
		Timestamp:     now,
		Source:        entity.SourceFallback,
	}
}
