package repository

import (
	"context"

	"github.com/ErlanBelekov/timesheet/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindOrCreate* are single-statement upserts. created is true only for the
	// call that inserted the row.
	FindOrCreateByEmail(ctx context.Context, email string) (u *domain.User, created bool, err error)
	FindOrCreateByMobile(ctx context.Context, mobile string) (u *domain.User, created bool, err error)
}
