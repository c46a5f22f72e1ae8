package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"standard config", "my-secret-key", time.Hour},
		{"long expiration", "secret", 24 * time.Hour * 30},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := newGenerator(tt.secret, tt.expiration)
			if string(gen.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(gen.secret))
			}
			if gen.expiration != tt.expiration {
				t.Errorf("expected expiration %v, got %v", tt.expiration, gen.expiration)
			}
		})
	}
}

func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		subject string
	}{
		{"operator", "ops"},
		{"email subject", "admin@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fixed := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
			gen := newGenerator("test-secret", time.Hour)
			gen.now = func() time.Time { return fixed }

			tokenStr, err := gen.GenerateToken(tt.subject)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			claims := jwt.MapClaims{}
			_, _, err = jwt.NewParser().ParseUnverified(tokenStr, claims)
			if err != nil {
				t.Fatalf("failed to parse token: %v", err)
			}
			if sub, _ := claims.GetSubject(); sub != tt.subject {
				t.Errorf("expected sub %q, got %q", tt.subject, sub)
			}
			if scope, _ := claims["scope"].(string); scope != ScopeSettingsWrite {
				t.Errorf("expected scope %q, got %q", ScopeSettingsWrite, scope)
			}
			exp, err := claims.GetExpirationTime()
			if err != nil || !exp.Time.Equal(fixed.Add(time.Hour)) {
				t.Errorf("expected exp %v, got %v (%v)", fixed.Add(time.Hour), exp, err)
			}
			iat, err := claims.GetIssuedAt()
			if err != nil || !iat.Time.Equal(fixed) {
				t.Errorf("expected iat %v, got %v (%v)", fixed, iat, err)
			}
		})
	}
}

func TestGenerator_GenerateToken_SigningMethod(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)
	tokenStr, err := gen.GenerateToken("ops")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if !token.Valid {
		t.Error("expected token to be valid")
	}
}

func TestGenerator_GenerateToken_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator("", time.Hour).GenerateToken("ops"); err != ErrEmptySecret {
		t.Errorf("expected ErrEmptySecret, got %v", err)
	}
}
