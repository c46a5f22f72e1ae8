package usecase

import (
	"errors"
	"fmt"
)

// ErrorKind classifies upstream fetch failures.
type ErrorKind int

const (
	// KindHTTP covers transport failures, timeouts, non-2xx responses and provider-rejected calls.
	KindHTTP ErrorKind = iota + 1
	// KindParse covers malformed payloads and missing or non-numeric fields.
	KindParse
	// KindEmptyResponse is a well-formed payload without a quote object.
	KindEmptyResponse
	// KindProviderRateLimited means the provider signaled throttling.
	KindProviderRateLimited
)

func (k ErrorKind) String() string {
	switch k {
	case KindHTTP:
		return "http_error"
	case KindParse:
		return "parse_error"
	case KindEmptyResponse:
		return "empty_response"
	case KindProviderRateLimited:
		return "provider_rate_limited"
	default:
		return "unknown"
	}
}

// UpstreamError is returned by QuoteSource implementations.
type UpstreamError struct {
	Kind    ErrorKind
	Symbol  string
	Message string
	Err     error
}

// NewUpstreamError builds an UpstreamError.
func NewUpstreamError(kind ErrorKind, symbol, message string, err error) *UpstreamError {
	return &UpstreamError{Kind: kind, Symbol: symbol, Message: message, Err: err}
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s for %s: %s: %v", e.Kind, e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("%s for %s: %s", e.Kind, e.Symbol, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is matches another *UpstreamError by kind, so errors.Is(err, &UpstreamError{Kind: KindParse}) works.
func (e *UpstreamError) Is(target error) bool {
	t, ok := target.(*UpstreamError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the ErrorKind carried by err, or 0 when err is not an UpstreamError.
func KindOf(err error) ErrorKind {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return 0
}

var (
	// ErrLiveSkipped is recorded for a batch item when the live fetch was not attempted.
	ErrLiveSkipped = errors.New("live fetch skipped")
)
