package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"quote_backend/internal/platform/http/response"
)

// ContextSubject is the gin context key holding the token subject.
const ContextSubject = "subject"

// AuthRequired returns a Gin middleware that accepts only HS256 bearer tokens signed
// with secret and carrying scope.
func AuthRequired(secret, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			// Write endpoints stay closed until a secret is configured.
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: "server misconfigured"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid token"})
			return
		}
		if got, _ := claims["scope"].(string); scope != "" && got != scope {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "insufficient scope"})
			return
		}
		if sub, err := claims.GetSubject(); err == nil {
			c.Set(ContextSubject, sub)
		}
		c.Next()
	}
}
