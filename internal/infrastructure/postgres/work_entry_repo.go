package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkEntryRepository struct {
	pool *pgxpool.Pool
}

func NewWorkEntryRepository(pool *pgxpool.Pool) *WorkEntryRepository {
	return &WorkEntryRepository{pool: pool}
}

const workEntryReturning = `id, user_id, client_id, hours, description, date, created_at, updated_at`

// selectWithClient joins a work entry row set (table or CTE aliased as w)
// to its client so every read carries client_name.
const selectWithClient = `
	SELECT w.id, w.user_id, w.client_id, c.name, w.hours, w.description, w.date,
	       w.created_at, w.updated_at`

func (r *WorkEntryRepository) List(ctx context.Context, input repository.ListWorkEntriesInput) ([]*domain.WorkEntry, error) {
	args := []any{input.UserID}
	query := selectWithClient + `
		FROM work_entries w
		JOIN clients c ON c.id = w.client_id
		WHERE w.user_id = $1`
	if input.ClientID != nil {
		args = append(args, *input.ClientID)
		query += fmt.Sprintf(" AND w.client_id = $%d", len(args))
	}
	query += ` ORDER BY w.date DESC, w.created_at DESC, w.id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work entries: %w", err)
	}
	defer rows.Close()

	entries := []*domain.WorkEntry{}
	for rows.Next() {
		e, err := scanWorkEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate work entries: %w", err)
	}
	return entries, nil
}

func (r *WorkEntryRepository) GetByID(ctx context.Context, id int64, userID string) (*domain.WorkEntry, error) {
	row := r.pool.QueryRow(ctx, selectWithClient+`
		FROM work_entries w
		JOIN clients c ON c.id = w.client_id
		WHERE w.id = $1 AND w.user_id = $2`, id, userID)
	return scanWorkEntry(row)
}

// Create inserts only when the client belongs to the same user. No row back
// means the client is unknown or foreign.
func (r *WorkEntryRepository) Create(ctx context.Context, e *domain.WorkEntry) (*domain.WorkEntry, error) {
	row := r.pool.QueryRow(ctx, `
		WITH w AS (
			INSERT INTO work_entries (user_id, client_id, hours, description, date)
			SELECT c.user_id, c.id, $3::numeric, $4::text, $5::date
			FROM clients c
			WHERE c.id = $2 AND c.user_id = $1
			RETURNING `+workEntryReturning+`
		)`+selectWithClient+`
		FROM w JOIN clients c ON c.id = w.client_id`,
		e.UserID, e.ClientID, e.Hours, e.Description, e.Date,
	)
	created, err := scanWorkEntry(row)
	if err != nil {
		if errors.Is(err, domain.ErrWorkEntryNotFound) || isForeignKeyViolation(err) {
			return nil, domain.ErrInvalidClientID
		}
		return nil, fmt.Errorf("create work entry: %w", err)
	}
	return created, nil
}

// Update answers ErrWorkEntryNotFound both for a missing entry and for a
// target client the user does not own.
func (r *WorkEntryRepository) Update(ctx context.Context, e *domain.WorkEntry) (*domain.WorkEntry, error) {
	row := r.pool.QueryRow(ctx, `
		WITH w AS (
			UPDATE work_entries
			SET    client_id = $3, hours = $4::numeric, description = $5::text,
			       date = $6::date, updated_at = NOW()
			WHERE  id = $1 AND user_id = $2
			  AND  EXISTS (SELECT 1 FROM clients WHERE id = $3 AND user_id = $2)
			RETURNING `+workEntryReturning+`
		)`+selectWithClient+`
		FROM w JOIN clients c ON c.id = w.client_id`,
		e.ID, e.UserID, e.ClientID, e.Hours, e.Description, e.Date,
	)
	updated, err := scanWorkEntry(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrWorkEntryNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *WorkEntryRepository) Delete(ctx context.Context, id int64, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM work_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete work entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkEntryNotFound
	}
	return nil
}

func scanWorkEntry(row rowScanner) (*domain.WorkEntry, error) {
	var e domain.WorkEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.ClientID, &e.ClientName, &e.Hours, &e.Description, &e.Date,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkEntryNotFound
		}
		return nil, fmt.Errorf("scan work entry: %w", err)
	}
	return &e, nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
