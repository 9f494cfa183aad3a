package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/repository"
)

type ClientUsecase struct {
	repo repository.ClientRepository
}

func NewClientUsecase(repo repository.ClientRepository) *ClientUsecase {
	return &ClientUsecase{repo: repo}
}

type ClientInput struct {
	UserID      string
	Name        string
	Description *string
}

func (u *ClientUsecase) List(ctx context.Context, userID string) ([]*domain.Client, error) {
	return u.repo.List(ctx, userID)
}

func (u *ClientUsecase) Get(ctx context.Context, id int64, userID string) (*domain.Client, error) {
	return u.repo.GetByID(ctx, id, userID)
}

func (u *ClientUsecase) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	return u.repo.Create(ctx, &domain.Client{
		UserID:      input.UserID,
		Name:        input.Name,
		Description: blankToNil(input.Description),
	})
}

func (u *ClientUsecase) Update(ctx context.Context, id int64, input ClientInput) (*domain.Client, error) {
	return u.repo.Update(ctx, &domain.Client{
		ID:          id,
		UserID:      input.UserID,
		Name:        input.Name,
		Description: blankToNil(input.Description),
	})
}

func (u *ClientUsecase) Delete(ctx context.Context, id int64, userID string) error {
	return u.repo.Delete(ctx, id, userID)
}

func (u *ClientUsecase) DeleteAll(ctx context.Context, userID string) (int, error) {
	n, err := u.repo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all clients: %w", err)
	}
	return n, nil
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
