package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"quote_backend/internal/feature/quotes/adapters/alphavantage/dto"
	"quote_backend/internal/feature/quotes/domain/entity"
	"quote_backend/internal/feature/quotes/usecase"
)

// KeyProvider supplies the current API key. An empty key means none is configured.
type KeyProvider interface {
	APIKey(ctx context.Context) (string, error)
}

// Client fetches single-symbol quotes from Alpha Vantage.
type Client struct {
	cfg    Config
	client *http.Client
	keys   KeyProvider
	logger *zap.Logger
	now    func() time.Time
}

// Client implements usecase.QuoteSource.
var _ usecase.QuoteSource = (*Client)(nil)

// NewClient creates a Client. When client is nil a plain client with cfg.Timeout is used.
func NewClient(cfg Config, client *http.Client, keys KeyProvider, logger *zap.Logger) *Client {
	cfg = cfg.withDefaults()
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{cfg: cfg, client: client, keys: keys, logger: logger, now: time.Now}
}

// Fetch performs one GLOBAL_QUOTE request for symbol. It never retries.
// Every failure is a *usecase.UpstreamError.
func (c *Client) Fetch(ctx context.Context, symbol string) (entity.Quote, error) {
	key, err := c.keys.APIKey(ctx)
	if err != nil {
		return entity.Quote{}, usecase.NewUpstreamError(usecase.KindHTTP, symbol, "resolve api key", err)
	}
	if key == "" {
		return entity.Quote{}, usecase.NewUpstreamError(usecase.KindHTTP, symbol, "api key not configured", nil)
	}

	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", key)
	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(c.cfg.BaseURL, "/"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Quote{}, usecase.NewUpstreamError(usecase.KindHTTP, symbol, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		// url.Error repeats the URL, which carries the key.
		return entity.Quote{}, usecase.NewUpstreamError(usecase.KindHTTP, symbol, "request failed", redact(err, key))
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", zap.Error(err))
		}
	}()

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return entity.Quote{}, usecase.NewUpstreamError(usecase.KindProviderRateLimited, symbol, "http 429", nil)
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return entity.Quote{}, usecase.NewUpstreamError(usecase.KindHTTP, symbol, fmt.Sprintf("http %d", res.StatusCode), nil)
	}

	var body dto.GlobalQuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Quote{}, usecase.NewUpstreamError(usecase.KindParse, symbol, "decode body", err)
	}
	return c.toQuote(symbol, body)
}

func (c *Client) toQuote(symbol string, body dto.GlobalQuoteResponse) (entity.Quote, error) {
	for _, msg := range []string{body.Note, body.Information} {
		if msg != "" && isRateLimitMessage(msg) {
			return entity.Quote{}, usecase.NewUpstreamError(usecase.KindProviderRateLimited, symbol, msg, nil)
		}
	}
	if body.ErrorMessage != "" {
		return entity.Quote{}, usecase.NewUpstreamError(usecase.KindHTTP, symbol, body.ErrorMessage, nil)
	}
	if body.GlobalQuote.IsEmpty() {
		if msg := firstNonEmpty(body.Information, body.Note); msg != "" {
			return entity.Quote{}, usecase.NewUpstreamError(usecase.KindHTTP, symbol, msg, nil)
		}
		return entity.Quote{}, usecase.NewUpstreamError(usecase.KindEmptyResponse, symbol, "no quote in response", nil)
	}

	g := body.GlobalQuote
	parseErr := func(field, raw string, err error) error {
		return usecase.NewUpstreamError(usecase.KindParse, symbol, fmt.Sprintf("parse %s %q", field, raw), err)
	}

	price, err := parseRequired(g.Price)
	if err != nil {
		return entity.Quote{}, parseErr("price", g.Price, err)
	}
	if price <= 0 {
		return entity.Quote{}, parseErr("price", g.Price, fmt.Errorf("price must be positive"))
	}
	change, err := parseRequired(g.Change)
	if err != nil {
		return entity.Quote{}, parseErr("change", g.Change, err)
	}
	pct, err := parseRequired(strings.TrimSuffix(strings.TrimSpace(g.ChangePercent), "%"))
	if err != nil {
		return entity.Quote{}, parseErr("change percent", g.ChangePercent, err)
	}
	high, err := parseOptional(g.High)
	if err != nil {
		return entity.Quote{}, parseErr("high", g.High, err)
	}
	low, err := parseOptional(g.Low)
	if err != nil {
		return entity.Quote{}, parseErr("low", g.Low, err)
	}
	prev, err := parseOptional(g.PreviousClose)
	if err != nil {
		return entity.Quote{}, parseErr("previous close", g.PreviousClose, err)
	}
	var volume int64
	if v := strings.TrimSpace(g.Volume); v != "" {
		volume, err = strconv.ParseInt(v, 10, 64)
		if err != nil || volume < 0 {
			return entity.Quote{}, parseErr("volume", g.Volume, err)
		}
	}

	sym := entity.NormalizeSymbol(g.Symbol)
	if sym == "" {
		sym = symbol
	}
	return entity.Quote{
		Symbol:           sym,
		Price:            price,
		Change:           change,
		ChangePercent:    pct,
		Volume:           volume,
		High:             high,
		Low:              low,
		PreviousClose:    prev,
		LatestTradingDay: g.LatestTradingDay,
		Timestamp:        c.now(),
		Source:           entity.SourceLive,
	}, nil
}

func isRateLimitMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "rate limit") || strings.Contains(m, "call frequency")
}

func parseRequired(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("missing value")
	}
	return parseFinite(raw)
}

func parseOptional(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return parseFinite(raw)
}

// parseFinite rejects NaN and infinities, which ParseFloat accepts.
func parseFinite(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// redact removes the API key from err's message.
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
