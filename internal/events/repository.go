package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventworks/backend/internal/apperr"
	"github.com/eventworks/backend/internal/models"
)

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an event repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const eventColumns = `id, name, description, starts_at, ends_at, location, owner_id, registration_status, is_limited, participant_limit, created_at`

func scanEvent(row pgx.Row, e *models.Event) error {
	return row.Scan(&e.ID, &e.Name, &e.Description, &e.StartsAt, &e.EndsAt, &e.Location,
		&e.OwnerID, &e.RegistrationStatus, &e.IsLimited, &e.ParticipantLimit, &e.CreatedAt)
}

// Create inserts a new event.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (name, description, starts_at, ends_at, location, owner_id, registration_status, is_limited, participant_limit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	return r.pool.QueryRow(ctx, q, e.Name, e.Description, e.StartsAt, e.EndsAt, e.Location,
		e.OwnerID, e.RegistrationStatus, e.IsLimited, e.ParticipantLimit, e.CreatedAt).Scan(&e.ID)
}

// GetByID returns an event by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	var e models.Event
	if err := scanEvent(r.pool.QueryRow(ctx, q, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("event with id=%d not found", id)
		}
		return nil, err
	}
	return &e, nil
}

// List returns a page of events ordered by created_at descending, id
// descending as the tie-break, optionally filtered by owner and status.
func (r *Repository) List(ctx context.Context, p ListParams) ([]models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events`
	var args []interface{}
	var cond string
	if p.OwnerID != nil {
		args = append(args, *p.OwnerID)
		cond = fmt.Sprintf(" WHERE owner_id = $%d", len(args))
	}
	if p.Status != nil {
		args = append(args, *p.Status)
		if cond == "" {
			cond = fmt.Sprintf(" WHERE registration_status = $%d", len(args))
		} else {
			cond += fmt.Sprintf(" AND registration_status = $%d", len(args))
		}
	}
	args = append(args, p.Size, p.Page*p.Size)
	q += cond + fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Event
	for rows.Next() {
		var e models.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// UpdateGuarded locks the event row, applies fn and writes the result in one
// transaction, so the ownership check and the gated mutation are atomic.
func (r *Repository) UpdateGuarded(ctx context.Context, id int64, fn func(*models.Event) error) (*models.Event, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	e, err := lockEvent(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(e); err != nil {
		return nil, err
	}

	const q = `UPDATE events SET name = $1, description = $2, starts_at = $3, ends_at = $4, location = $5,
		registration_status = $6, is_limited = $7, participant_limit = $8 WHERE id = $9`
	if _, err := tx.Exec(ctx, q, e.Name, e.Description, e.StartsAt, e.EndsAt, e.Location,
		e.RegistrationStatus, e.IsLimited, e.ParticipantLimit, e.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return e, nil
}

// DeleteGuarded locks the event row, runs check and deletes the row in one
// transaction. Membership rows cascade via the foreign key.
func (r *Repository) DeleteGuarded(ctx context.Context, id int64, check func(*models.Event) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	e, err := lockEvent(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := check(e); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, e.ID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func lockEvent(ctx context.Context, tx pgx.Tx, id int64) (*models.Event, error) {
	q := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	var e models.Event
	if err := scanEvent(tx.QueryRow(ctx, q, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("event with id=%d not found", id)
		}
		return nil, err
	}
	return &e, nil
}
