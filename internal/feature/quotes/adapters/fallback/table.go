// Package fallback holds the static reference data served when no fetched quote exists.
package fallback

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/usecase"
)

const (
	// DefaultBasePrice is used for symbols missing from the table.
	DefaultBasePrice = 100.0
	// DefaultSharesOutstanding is used to estimate market cap for unknown symbols.
	DefaultSharesOutstanding = 1e9
)

// Company is one row of the table.
type Company struct {
	Name              string  `yaml:"name"`
	BasePrice         float64 `yaml:"base_price"`
	SharesOutstanding float64 `yaml:"shares_outstanding"`
}

// Table maps upper-cased symbols to reference data.
type Table struct {
	DefaultBasePrice float64            `yaml:"default_base_price"`
	Companies        map[string]Company `yaml:"companies"`
}

var _ usecase.FallbackTable = (*Table)(nil)

// DefaultTable returns the built-in reference data for the default watchlist.
func DefaultTable() *Table {
	return &Table{
		DefaultBasePrice: DefaultBasePrice,
		Companies: map[string]Company{
			"AAPL":  {Name: "Apple Inc.", BasePrice: 230.49, SharesOutstanding: 15.2e9},
			"NVDA":  {Name: "NVIDIA Corporation", BasePrice: 177.88, SharesOutstanding: 24.6e9},
			"TSLA":  {Name: "Tesla, Inc.", BasePrice: 295.14, SharesOutstanding: 3.17e9},
			"MSFT":  {Name: "Microsoft Corporation", BasePrice: 470.38, SharesOutstanding: 7.43e9},
			"GOOGL": {Name: "Alphabet Inc.", BasePrice: 173.68, SharesOutstanding: 12.4e9},
			"META":  {Name: "Meta Platforms, Inc.", BasePrice: 750.00, SharesOutstanding: 2.54e9},
			"AMZN":  {Name: "Amazon.com, Inc.", BasePrice: 213.57, SharesOutstanding: 10.7e9},
		},
	}
}

// LoadTable reads a YAML table from path and merges it over DefaultTable.
// An empty path returns DefaultTable.
func LoadTable(path string) (*Table, error) {
	t := DefaultTable()
	if path == "" {
		return t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback table: %w", err)
	}
	var file Table
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse fallback table %s: %w", path, err)
	}

	if file.DefaultBasePrice > 0 {
		t.DefaultBasePrice = file.DefaultBasePrice
	}
	for sym, c := range file.Companies {
		if c.BasePrice < 0 || c.SharesOutstanding < 0 {
			return nil, fmt.Errorf("fallback table %s: negative value for %s", path, sym)
		}
		t.Companies[entity.NormalizeSymbol(sym)] = c
	}
	return t, nil
}

// BasePrice returns the reference price for symbol, or the default price.
func (t *Table) BasePrice(symbol string) float64 {
	if c, ok := t.Companies[entity.NormalizeSymbol(symbol)]; ok && c.BasePrice > 0 {
		return c.BasePrice
	}
	if t.DefaultBasePrice > 0 {
		return t.DefaultBasePrice
	}
	return DefaultBasePrice
}

// CompanyName returns the company name, or "<SYMBOL> Corporation" when unknown.
func (t *Table) CompanyName(symbol string) string {
	sym := entity.NormalizeSymbol(symbol)
	if c, ok := t.Companies[sym]; ok && c.Name != "" {
		return c.Name
	}
	if sym == "" {
		return ""
	}
	return sym + " Corporation"
}

// MarketCap estimates market capitalization at price.
func (t *Table) MarketCap(symbol string, price float64) float64 {
	shares := DefaultSharesOutstanding
	if c, ok := t.Companies[entity.NormalizeSymbol(symbol)]; ok && c.SharesOutstanding > 0 {
		shares = c.SharesOutstanding
	}
	return price * shares
}
