package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes at most limit sessions that expired before cutoff
	// and reports how many rows went away.
	DeleteExpired(ctx context.Context, cutoff time.Time, limit int) (int, error)
}
