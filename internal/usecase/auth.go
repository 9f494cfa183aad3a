package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/auth"
	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/repository"
	"github.com/google/uuid"
)

type tokenIssuer interface {
	Issue(email, sessionID string) (string, time.Time, error)
}

type AuthUsecase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository // nil when tokens are stateless
	issuer   tokenIssuer
}

// NewAuthUsecase wires login for the bearer variants. Pass a nil session
// repository to issue stateless tokens.
func NewAuthUsecase(users repository.UserRepository, sessions repository.SessionRepository, issuer tokenIssuer) *AuthUsecase {
	return &AuthUsecase{users: users, sessions: sessions, issuer: issuer}
}

type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
	Created   bool
}

// Login finds or creates the user for email and issues a bearer token. With a
// session repository the token is also recorded so logout can revoke it.
func (u *AuthUsecase) Login(ctx context.Context, email string) (*LoginResult, error) {
	email = auth.NormalizeEmail(email)
	if !auth.ValidEmail(email) {
		return nil, domain.ErrEmailFormat
	}

	user, created, err := u.users.FindOrCreateByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find or create user: %w", err)
	}

	var sessionID string
	if u.sessions != nil {
		sessionID = uuid.NewString()
	}

	token, expiresAt, err := u.issuer.Issue(user.Email, sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if u.sessions != nil {
		_, err = u.sessions.Create(ctx, &domain.Session{
			ID:        sessionID,
			UserEmail: user.Email,
			Token:     token,
			ExpiresAt: expiresAt,
		})
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt, Created: created}, nil
}

// Logout revokes the session behind the current token. Stateless tokens and
// already removed sessions are a no-op.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if u.sessions == nil || sessionID == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (u *AuthUsecase) Me(ctx context.Context, userID string) (*domain.User, error) {
	return u.users.FindByID(ctx, userID)
}
