package domain

import (
	"errors"
	"time"
)

// Credential extraction errors. These never reach the store.
var (
	ErrAuthHeaderMissing   = errors.New("authorization header required")
	ErrAuthHeaderFormat    = errors.New("invalid authorization format")
	ErrEmailHeaderMissing  = errors.New("user email header required")
	ErrMobileHeaderMissing = errors.New("user mobile header required")
	ErrEmailFormat         = errors.New("invalid email format")
	ErrMobileFormat        = errors.New("invalid mobile number format")
)

// Token verification errors.
var (
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenEmailFormat = errors.New("invalid email format in token")
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionInvalid covers a missing session, a token that does not match
	// the stored one and an expired session row.
	ErrSessionInvalid = errors.New("session expired or invalid")
)

type User struct {
	ID        string
	Email     string
	Mobile    string
	CreatedAt time.Time
}

// Session binds an issued bearer token to a server-side row so it can be
// revoked before the token itself expires.
type Session struct {
	ID        string
	UserEmail string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
