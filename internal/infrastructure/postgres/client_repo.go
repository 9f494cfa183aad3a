package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

const clientColumns = `id, user_id, name, description, created_at, updated_at`

func (r *ClientRepository) List(ctx context.Context, userID string) ([]*domain.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE user_id = $1
		ORDER BY name ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := []*domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64, userID string) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE id = $1 AND user_id = $2`, id, userID)
	return scanClient(row)
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clients (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING `+clientColumns,
		c.UserID, c.Name, c.Description,
	)
	created, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return created, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE clients
		SET    name = $3, description = $4, updated_at = NOW()
		WHERE  id = $1 AND user_id = $2
		RETURNING `+clientColumns,
		c.ID, c.UserID, c.Name, c.Description,
	)
	return scanClient(row)
}

// Delete removes the client together with its work entries in one transaction.
func (r *ClientRepository) Delete(ctx context.Context, id int64, userID string) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx,
		`DELETE FROM work_entries WHERE client_id = $1 AND user_id = $2`, id, userID,
	); err != nil {
		return fmt.Errorf("delete client work entries: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = domain.ErrClientNotFound
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *ClientRepository) DeleteAll(ctx context.Context, userID string) (n int, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM work_entries WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("delete work entries: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM clients WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete clients: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("scan client: %w", err)
	}
	return &c, nil
}
