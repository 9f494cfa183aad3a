package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// headerAuthenticator trusts an identity header set by an upstream proxy and
// provisions the user on first sight.
type headerAuthenticator struct {
	variant Variant
	users   UserStore
	logger  *slog.Logger
}

func (a *headerAuthenticator) Variant() Variant { return a.variant }

func (a *headerAuthenticator) Authenticate(ctx context.Context, h http.Header) (*Identity, error) {
	if a.variant == VariantHeaderMobile {
		return a.byMobile(ctx, h)
	}
	return a.byEmail(ctx, h)
}

func (a *headerAuthenticator) byEmail(ctx context.Context, h http.Header) (*Identity, error) {
	email, err := EmailHeader(h)
	if err != nil {
		return nil, err
	}

	user, created, err := a.users.FindOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("provision user by email: %w", err)
	}
	if created {
		a.logger.InfoContext(ctx, "user provisioned", "user_id", user.ID)
	}
	return &Identity{UserID: user.ID, Email: user.Email, Mobile: user.Mobile}, nil
}

func (a *headerAuthenticator) byMobile(ctx context.Context, h http.Header) (*Identity, error) {
	mobile, err := MobileHeader(h)
	if err != nil {
		return nil, err
	}

	user, created, err := a.users.FindOrCreateByMobile(ctx, mobile)
	if err != nil {
		return nil, fmt.Errorf("provision user by mobile: %w", err)
	}
	if created {
		a.logger.InfoContext(ctx, "user provisioned", "user_id", user.ID)
	}
	return &Identity{UserID: user.ID, Email: user.Email, Mobile: user.Mobile}, nil
}
