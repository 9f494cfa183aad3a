package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the verified payload of a bearer token.
type Claims struct {
	Email     string
	SessionID string
	ExpiresAt time.Time
}

// TokenVerifier checks a raw bearer token. It never touches the store, so a
// forged or expired token costs no database round trip.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*Claims, error)
}

type hmacClaims struct {
	Email     string `json:"email"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// HMACVerifier accepts HS256 tokens signed with a shared secret.
type HMACVerifier struct {
	key []byte
}

func NewHMACVerifier(secret []byte) *HMACVerifier {
	return &HMACVerifier{key: secret}
}

func (v *HMACVerifier) Verify(_ context.Context, raw string) (*Claims, error) {
	var c hmacClaims
	// jwt/v5 checks the signature before any claim, so an expired token with
	// a bad signature is reported as invalid, not expired. exp is optional; a
	// token without it never expires on its own.
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return v.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	email := NormalizeEmail(c.Email)
	if !ValidEmail(email) {
		return nil, domain.ErrTokenEmailFormat
	}

	claims := &Claims{Email: email, SessionID: c.SessionID}
	if c.ExpiresAt != nil {
		claims.ExpiresAt = c.ExpiresAt.Time
	}
	return claims, nil
}

// Issuer mints HS256 tokens that HMACVerifier accepts.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{key: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for email. sessionID may be empty for stateless tokens.
func (i *Issuer) Issue(email, sessionID string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, hmacClaims{
		Email:     email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	// NumericDate drops sub-second precision; report what the token carries.
	return signed, expiresAt.Truncate(time.Second), nil
}
