// Package auth turns the credentials on an incoming request into a resolved
// Identity. Each variant runs the same chain: extract the credential, verify
// it, resolve the session and user it names. The first failing step ends the
// chain with a domain error that the transport layer maps to a response.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
)

type Variant string

const (
	VariantBearerSession   Variant = "bearer_session"
	VariantBearerStateless Variant = "bearer_stateless"
	VariantHeaderEmail     Variant = "header_email"
	VariantHeaderMobile    Variant = "header_mobile"
)

var ErrUnknownVariant = errors.New("unknown auth variant")

// Authenticator resolves the caller of a request. Errors are either one of the
// domain credential/session sentinels or an infrastructure failure.
type Authenticator interface {
	Authenticate(ctx context.Context, h http.Header) (*Identity, error)
	Variant() Variant
}

type SessionFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Session, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindOrCreateByEmail(ctx context.Context, email string) (*domain.User, bool, error)
	FindOrCreateByMobile(ctx context.Context, mobile string) (*domain.User, bool, error)
}

type Deps struct {
	Verifier TokenVerifier // bearer variants
	Sessions SessionFinder // bearer_session
	Users    UserStore
	Logger   *slog.Logger
}

// New builds the Authenticator for variant. Missing dependencies and unknown
// variants are reported here so a misconfigured server fails at startup.
func New(variant Variant, deps Deps) (Authenticator, error) {
	if deps.Users == nil {
		return nil, fmt.Errorf("auth %s: user store is required", variant)
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "auth", "variant", string(variant))

	switch variant {
	case VariantBearerSession:
		if deps.Verifier == nil || deps.Sessions == nil {
			return nil, fmt.Errorf("auth %s: verifier and session store are required", variant)
		}
		return &bearerAuthenticator{
			variant:  variant,
			verifier: deps.Verifier,
			sessions: deps.Sessions,
			users:    deps.Users,
			logger:   logger,
			now:      time.Now,
		}, nil
	case VariantBearerStateless:
		if deps.Verifier == nil {
			return nil, fmt.Errorf("auth %s: verifier is required", variant)
		}
		return &bearerAuthenticator{
			variant:  variant,
			verifier: deps.Verifier,
			users:    deps.Users,
			logger:   logger,
			now:      time.Now,
		}, nil
	case VariantHeaderEmail:
		return &headerAuthenticator{variant: variant, users: deps.Users, logger: logger}, nil
	case VariantHeaderMobile:
		return &headerAuthenticator{variant: variant, users: deps.Users, logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}
