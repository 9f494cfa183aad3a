package auth_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var (
	testKey  = []byte("auth-test-secret-at-least-32-chars!")
	errStore = errors.New("connection refused")
)

// fakeSessions counts calls so tests can prove the store was never reached.
type fakeSessions struct {
	calls    atomic.Int32
	findByID func(ctx context.Context, id string) (*domain.Session, error)
}

func (f *fakeSessions) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	f.calls.Add(1)
	if f.findByID == nil {
		return nil, domain.ErrSessionNotFound
	}
	return f.findByID(ctx, id)
}

type fakeUsers struct {
	calls                atomic.Int32
	findByEmail          func(ctx context.Context, email string) (*domain.User, error)
	findOrCreateByEmail  func(ctx context.Context, email string) (*domain.User, bool, error)
	findOrCreateByMobile func(ctx context.Context, mobile string) (*domain.User, bool, error)
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.calls.Add(1)
	if f.findByEmail == nil {
		return nil, domain.ErrUserNotFound
	}
	return f.findByEmail(ctx, email)
}

func (f *fakeUsers) FindOrCreateByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	f.calls.Add(1)
	return f.findOrCreateByEmail(ctx, email)
}

func (f *fakeUsers) FindOrCreateByMobile(ctx context.Context, mobile string) (*domain.User, bool, error) {
	f.calls.Add(1)
	return f.findOrCreateByMobile(ctx, mobile)
}

func existingUser(email string) func(context.Context, string) (*domain.User, error) {
	return func(_ context.Context, got string) (*domain.User, error) {
		if got != email {
			return nil, domain.ErrUserNotFound
		}
		return &domain.User{ID: "user-1", Email: email, CreatedAt: time.Now()}, nil
	}
}

func makeJWT(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims(email, sid string) jwt.MapClaims {
	c := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	if sid != "" {
		c["sid"] = sid
	}
	return c
}
