// Package http builds the outbound HTTP client used for the quote provider.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultUserAgent identifies outbound requests.
const DefaultUserAgent = "quote_backend/1.0"

// NewHTTPClient returns a client with an explicit transport and an overall request timeout.
// http.DefaultClient has no timeout, so callers always go through here.
// An empty userAgent uses DefaultUserAgent.
func NewHTTPClient(timeout time.Duration, userAgent string) *http.Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{next: t, userAgent: userAgent},
	}
}

// userAgentTransport sets User-Agent on requests that do not carry one.
type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(r)
}
