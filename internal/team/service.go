// Package team manages the organizing-team membership of events.
package team

import (
	"context"

	"go.uber.org/zap"

	"github.com/eventworks/backend/internal/apperr"
	"github.com/eventworks/backend/internal/models"
)

// EventSource resolves event ids to raw entities for authorization.
type EventSource interface {
	GetInternal(ctx context.Context, id int64) (*models.Event, error)
}

// Store is the persistence contract the team service consumes.
type Store interface {
	// Add inserts a membership. A duplicate (event, user) pair fails with
	// apperr.ErrConflict.
	Add(ctx context.Context, m *models.OrgTeamMember) error
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*models.OrgTeamMember, error)
	HasRole(ctx context.Context, eventID, userID int64, role models.Role) (bool, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.OrgTeamMember, error)
	UpdateRole(ctx context.Context, id int64, role models.Role) error
	Delete(ctx context.Context, id int64) error
}

// MemberInput identifies a membership and the role to assign.
type MemberInput struct {
	EventID int64
	UserID  int64
	Role    models.Role
}

// MemberView is the public projection of a team member.
type MemberView struct {
	UserID int64       `json:"user_id"`
	Role   models.Role `json:"role"`
}

// Service enforces the three-tier authorization rule on team mutations:
// the event owner and MANAGER members may change team composition, an
// EXECUTOR never may, including against their own record.
type Service struct {
	events EventSource
	store  Store
	logger *zap.Logger
}

// NewService creates a team service.
func NewService(events EventSource, store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{events: events, store: store, logger: logger}
}

// authorize allows the event owner and MANAGER members through, in that
// order of precedence.
func (s *Service) authorize(ctx context.Context, requesterID int64, event *models.Event) error {
	if event.OwnerID == requesterID {
		return nil
	}
	isManager, err := s.store.HasRole(ctx, event.ID, requesterID, models.RoleManager)
	if err != nil {
		return err
	}
	if isManager {
		return nil
	}
	return apperr.Forbidden("user(id=%d) has no rights to modify the organizing team of event(id=%d)",
		requesterID, event.ID)
}

// Add adds a user to the event's organizing team. The owner may never be
// added as a member, and (event, user) pairs are unique.
func (s *Service) Add(ctx context.Context, requesterID int64, in MemberInput) (MemberView, error) {
	event, err := s.events.GetInternal(ctx, in.EventID)
	if err != nil {
		return MemberView{}, err
	}
	if err := s.authorize(ctx, requesterID, event); err != nil {
		return MemberView{}, err
	}
	if in.UserID == event.OwnerID {
		return MemberView{}, apperr.Conflict("owner(id=%d) of event(id=%d) cannot be added as a team member",
			in.UserID, event.ID)
	}

	m := &models.OrgTeamMember{EventID: in.EventID, UserID: in.UserID, Role: in.Role}
	if err := s.store.Add(ctx, m); err != nil {
		return MemberView{}, err
	}

	s.logger.Info("team member added", zap.Int64("event_id", in.EventID),
		zap.Int64("user_id", in.UserID), zap.String("role", string(in.Role)))

	return MemberView{UserID: m.UserID, Role: m.Role}, nil
}

// Update overwrites an existing member's role.
func (s *Service) Update(ctx context.Context, requesterID int64, in MemberInput) (MemberView, error) {
	event, err := s.events.GetInternal(ctx, in.EventID)
	if err != nil {
		return MemberView{}, err
	}
	if err := s.authorize(ctx, requesterID, event); err != nil {
		return MemberView{}, err
	}

	m, err := s.store.GetByEventAndUser(ctx, in.EventID, in.UserID)
	if err != nil {
		return MemberView{}, err
	}
	if err := s.store.UpdateRole(ctx, m.ID, in.Role); err != nil {
		return MemberView{}, err
	}

	s.logger.Info("team member updated", zap.Int64("event_id", in.EventID),
		zap.Int64("user_id", in.UserID), zap.String("role", string(in.Role)))

	return MemberView{UserID: m.UserID, Role: in.Role}, nil
}

// Delete removes a member from the event's organizing team.
func (s *Service) Delete(ctx context.Context, requesterID, eventID, userID int64) error {
	event, err := s.events.GetInternal(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, requesterID, event); err != nil {
		return err
	}

	m, err := s.store.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, m.ID); err != nil {
		return err
	}

	s.logger.Info("team member deleted", zap.Int64("event_id", eventID), zap.Int64("user_id", userID))

	return nil
}

// Members returns all members of the event's organizing team. The listing
// is public.
func (s *Service) Members(ctx context.Context, eventID int64) ([]MemberView, error) {
	if _, err := s.events.GetInternal(ctx, eventID); err != nil {
		return nil, err
	}
	members, err := s.store.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	views := make([]MemberView, 0, len(members))
	for _, m := range members {
		views = append(views, MemberView{UserID: m.UserID, Role: m.Role})
	}
	return views, nil
}
