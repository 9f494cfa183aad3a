package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// JWKSVerifier accepts tokens signed by any key published at a JWKS URL.
// Keys are cached and refreshed in the background.
type JWKSVerifier struct {
	cache *jwk.Cache
	url   string
}

func NewJWKSVerifier(ctx context.Context, url string) (*JWKSVerifier, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(url, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, fmt.Errorf("register jwks: %w", err)
	}
	return &JWKSVerifier{cache: cache, url: url}, nil
}

func (v *JWKSVerifier) Verify(ctx context.Context, raw string) (*Claims, error) {
	keys, err := v.cache.Get(ctx, v.url)
	if err != nil {
		// The key set being unreachable says nothing about the token.
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}

	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKeySet(keys),
		jwt.WithValidate(true),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	var email, sid string
	if val, ok := tok.Get("email"); ok {
		email, _ = val.(string)
	}
	if val, ok := tok.Get("sid"); ok {
		sid, _ = val.(string)
	}

	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, domain.ErrTokenEmailFormat
	}
	return &Claims{Email: email, SessionID: sid, ExpiresAt: tok.Expiration()}, nil
}

// Ping reports whether the key set can currently be served, for readiness checks.
func (v *JWKSVerifier) Ping(ctx context.Context) error {
	if _, err := v.cache.Get(ctx, v.url); err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	return nil
}
