package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
)

// bearerAuthenticator serves both bearer variants. A nil session store means
// stateless: the signed token alone vouches for the caller.
type bearerAuthenticator struct {
	variant  Variant
	verifier TokenVerifier
	sessions SessionFinder
	users    UserStore
	logger   *slog.Logger
	now      func() time.Time
}

func (a *bearerAuthenticator) Variant() Variant { return a.variant }

func (a *bearerAuthenticator) Authenticate(ctx context.Context, h http.Header) (*Identity, error) {
	raw, err := BearerToken(h)
	if err != nil {
		return nil, err
	}

	claims, err := a.verifier.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}

	id := &Identity{Email: claims.Email, Token: raw}

	if a.sessions != nil {
		session, err := a.resolveSession(ctx, raw, claims)
		if err != nil {
			return nil, err
		}
		id.SessionID = session.ID
	}

	user, err := a.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	id.UserID = user.ID
	id.Mobile = user.Mobile
	return id, nil
}

// resolveSession answers ErrSessionInvalid for every way a session can fail
// to back the token. The reason is only logged.
func (a *bearerAuthenticator) resolveSession(ctx context.Context, raw string, claims *Claims) (*domain.Session, error) {
	if claims.SessionID == "" {
		a.logger.DebugContext(ctx, "session rejected", "reason", "token carries no session id")
		return nil, domain.ErrSessionInvalid
	}

	session, err := a.sessions.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			a.logger.DebugContext(ctx, "session rejected", "reason", "not found", "session_id", claims.SessionID)
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	switch {
	case subtle.ConstantTimeCompare([]byte(session.Token), []byte(raw)) != 1:
		a.logger.DebugContext(ctx, "session rejected", "reason", "token mismatch", "session_id", session.ID)
		return nil, domain.ErrSessionInvalid
	case session.UserEmail != claims.Email:
		a.logger.DebugContext(ctx, "session rejected", "reason", "email mismatch", "session_id", session.ID)
		return nil, domain.ErrSessionInvalid
	case session.Expired(a.now()):
		a.logger.DebugContext(ctx, "session rejected", "reason", "expired", "session_id", session.ID)
		return nil, domain.ErrSessionInvalid
	}
	return session, nil
}
