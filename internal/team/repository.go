package team

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventworks/backend/internal/apperr"
	"github.com/eventworks/backend/internal/models"
)

// Repository handles organizing-team member persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a team repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Add inserts a membership. The unique (event_id, user_id) constraint maps
// to a conflict error.
func (r *Repository) Add(ctx context.Context, m *models.OrgTeamMember) error {
	const q = `INSERT INTO organizing_team_members (event_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.pool.QueryRow(ctx, q, m.EventID, m.UserID, m.Role).Scan(&m.ID)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return apperr.Conflict("user(id=%d) is already a team member of event(id=%d)", m.UserID, m.EventID)
	}
	return err
}

// GetByEventAndUser returns the membership for (eventID, userID).
func (r *Repository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*models.OrgTeamMember, error) {
	const q = `SELECT id, event_id, user_id, role FROM organizing_team_members
		WHERE event_id = $1 AND user_id = $2`
	var m models.OrgTeamMember
	err := r.pool.QueryRow(ctx, q, eventID, userID).Scan(&m.ID, &m.EventID, &m.UserID, &m.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("no team member for event(id=%d) with user(id=%d)", eventID, userID)
		}
		return nil, err
	}
	return &m, nil
}

// HasRole reports whether (eventID, userID) holds the given role.
func (r *Repository) HasRole(ctx context.Context, eventID, userID int64, role models.Role) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM organizing_team_members
		WHERE event_id = $1 AND user_id = $2 AND role = $3)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, eventID, userID, role).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByEvent returns all members of an event's organizing team.
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]models.OrgTeamMember, error) {
	const q = `SELECT id, event_id, user_id, role FROM organizing_team_members
		WHERE event_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.OrgTeamMember
	for rows.Next() {
		var m models.OrgTeamMember
		if err := rows.Scan(&m.ID, &m.EventID, &m.UserID, &m.Role); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// UpdateRole overwrites the member's role.
func (r *Repository) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	_, err := r.pool.Exec(ctx, `UPDATE organizing_team_members SET role = $1 WHERE id = $2`, role, id)
	return err
}

// Delete removes a membership by id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM organizing_team_members WHERE id = $1`, id)
	return err
}
