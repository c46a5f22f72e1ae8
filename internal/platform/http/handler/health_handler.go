// Package handler serves platform-level endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LiveReporter reports whether live quote fetching is enabled.
type LiveReporter interface {
	LiveEnabled(ctx context.Context) bool
}

// Health returns the /healthz handler. The body includes whether live fetching is
// enabled; a nil reporter reports false.
func Health(live LiveReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
		default:
			enabled := live != nil && live.LiveEnabled(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"status": "ok", "live": enabled})
		}
	}
}
