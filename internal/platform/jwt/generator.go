// Package jwtmw issues and verifies the operator tokens that guard write endpoints.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeSettingsWrite allows changing live-data settings.
const ScopeSettingsWrite = "settings:write"

// ErrEmptySecret is returned when a token is requested without a signing secret.
var ErrEmptySecret = errors.New("jwt secret is empty")

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given operator.
	GenerateToken(subject string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return newGenerator(secret, expiration)
}

func newGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed HS256 token carrying the settings scope.
func (g *generator) GenerateToken(subject string) (string, error) {
	if len(g.secret) == 0 {
		return "", ErrEmptySecret
	}
	now := g.now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
		"scope": ScopeSettingsWrite,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
