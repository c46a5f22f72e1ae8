package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"quote_backend/internal/platform/http/response"
)

// idleTTL is how long an unused client bucket is kept.
const idleTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter keeps one token bucket per client IP.
type ClientLimiter struct {
	mu      sync.Mutex
	buckets map[string]*clientBucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
	swept   time.Time
}

// NewClientLimiter allows perSecond requests per client with the given burst.
// A non-positive perSecond disables limiting.
func NewClientLimiter(perSecond float64, burst int) *ClientLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &ClientLimiter{
		buckets: make(map[string]*clientBucket),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

// Allow reports whether client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	b, ok := l.buckets[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

func (l *ClientLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.swept) < idleTTL {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(l.buckets, k)
		}
	}
	l.swept = now
}

// RateLimit rejects requests over the client's budget with 429.
func RateLimit(l *ClientLimiter) gin.HandlerFunc {
	retryAfter := "1"
	if l.limit != rate.Inf && l.limit > 0 {
		retryAfter = strconv.Itoa(int(math.Ceil(1 / float64(l.limit))))
	}
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.ErrorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}
