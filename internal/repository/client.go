package repository

import (
	"context"

	"github.com/ErlanBelekov/timesheet/internal/domain"
)

// Every method is scoped to the owning user; rows of other users behave as if
// they did not exist.
type ClientRepository interface {
	List(ctx context.Context, userID string) ([]*domain.Client, error)
	GetByID(ctx context.Context, id int64, userID string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id int64, userID string) error
	DeleteAll(ctx context.Context, userID string) (int, error)
}
