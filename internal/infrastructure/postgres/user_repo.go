package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, COALESCE(email, ''), COALESCE(mobile, ''), created_at`

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// The no-op DO UPDATE makes RETURNING yield the existing row on conflict, so
// concurrent first requests for the same address all get the same user back.
// xmax is zero only for the freshly inserted tuple.
func (r *UserRepository) FindOrCreateByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email) VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING `+userColumns+`, (xmax = 0) AS created`, email)
	return scanUpsertedUser(row)
}

func (r *UserRepository) FindOrCreateByMobile(ctx context.Context, mobile string) (*domain.User, bool, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (mobile) VALUES ($1)
		ON CONFLICT (mobile) DO UPDATE SET mobile = EXCLUDED.mobile
		RETURNING `+userColumns+`, (xmax = 0) AS created`, mobile)
	return scanUpsertedUser(row)
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Mobile, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func scanUpsertedUser(row rowScanner) (*domain.User, bool, error) {
	var (
		u       domain.User
		created bool
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Mobile, &u.CreatedAt, &created); err != nil {
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}
	return &u, created, nil
}
