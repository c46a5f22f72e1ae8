// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// Symbol is one tracked ticker. SortKey orders the watchlist.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:20;not null;uniqueIndex"`
	Name      string    `gorm:"size:255;not null"`
	Market    string    `gorm:"size:100;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// DefaultWatchlist is seeded into an empty database.
func DefaultWatchlist() []Symbol {
	return []Symbol{
		{Code: "NVDA", Name: "NVIDIA Corporation", Market: "NASDAQ", IsActive: true, SortKey: 1},
		{Code: "META", Name: "Meta Platforms, Inc.", Market: "NASDAQ", IsActive: true, SortKey: 2},
		{Code: "TSLA", Name: "Tesla, Inc.", Market: "NASDAQ", IsActive: true, SortKey: 3},
		{Code: "AAPL", Name: "Apple Inc.", Market: "NASDAQ", IsActive: true, SortKey: 4},
		{Code: "MSFT", Name: "Microsoft Corporation", Market: "NASDAQ", IsActive: true, SortKey: 5},
		{Code: "AMZN", Name: "Amazon.com, Inc.", Market: "NASDAQ", IsActive: true, SortKey: 6},
		{Code: "GOOGL", Name: "Alphabet Inc.", Market: "NASDAQ", IsActive: true, SortKey: 7},
	}
}
