package usecase

import (
	"context"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/repository"
)

type WorkEntryUsecase struct {
	repo repository.WorkEntryRepository
}

func NewWorkEntryUsecase(repo repository.WorkEntryRepository) *WorkEntryUsecase {
	return &WorkEntryUsecase{repo: repo}
}

type WorkEntryInput struct {
	UserID      string
	ClientID    int64
	Hours       float64
	Description *string
	Date        time.Time
}

func (in WorkEntryInput) entry() *domain.WorkEntry {
	return &domain.WorkEntry{
		UserID:      in.UserID,
		ClientID:    in.ClientID,
		Hours:       in.Hours,
		Description: blankToNil(in.Description),
		Date:        in.Date,
	}
}

func (u *WorkEntryUsecase) List(ctx context.Context, userID string, clientID *int64) ([]*domain.WorkEntry, error) {
	return u.repo.List(ctx, repository.ListWorkEntriesInput{UserID: userID, ClientID: clientID})
}

func (u *WorkEntryUsecase) Get(ctx context.Context, id int64, userID string) (*domain.WorkEntry, error) {
	return u.repo.GetByID(ctx, id, userID)
}

// Create fails with ErrInvalidClientID when the client is not the user's.
func (u *WorkEntryUsecase) Create(ctx context.Context, input WorkEntryInput) (*domain.WorkEntry, error) {
	return u.repo.Create(ctx, input.entry())
}

// Update fails with ErrWorkEntryNotFound when either the entry or the target
// client is not the user's.
func (u *WorkEntryUsecase) Update(ctx context.Context, id int64, input WorkEntryInput) (*domain.WorkEntry, error) {
	e := input.entry()
	e.ID = id
	return u.repo.Update(ctx, e)
}

func (u *WorkEntryUsecase) Delete(ctx context.Context, id int64, userID string) error {
	return u.repo.Delete(ctx, id, userID)
}
