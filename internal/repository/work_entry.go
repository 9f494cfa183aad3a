package repository

import (
	"context"

	"github.com/ErlanBelekov/timesheet/internal/domain"
)

type ListWorkEntriesInput struct {
	UserID   string
	ClientID *int64 // nil = all clients
}

type WorkEntryRepository interface {
	List(ctx context.Context, input ListWorkEntriesInput) ([]*domain.WorkEntry, error)
	GetByID(ctx context.Context, id int64, userID string) (*domain.WorkEntry, error)
	Create(ctx context.Context, e *domain.WorkEntry) (*domain.WorkEntry, error)
	Update(ctx context.Context, e *domain.WorkEntry) (*domain.WorkEntry, error)
	Delete(ctx context.Context, id int64, userID string) error
}
