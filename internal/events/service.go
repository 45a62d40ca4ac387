package events

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/eventworks/backend/internal/apperr"
	"github.com/eventworks/backend/internal/identity"
	"github.com/eventworks/backend/internal/models"
)

// ListParams filters and pages the event listing. Offset is Page*Size.
type ListParams struct {
	Page    int
	Size    int
	OwnerID *int64
	Status  *models.RegistrationStatus
}

// Store is the persistence contract the event service consumes.
type Store interface {
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, p ListParams) ([]models.Event, error)
	// UpdateGuarded loads the event under an exclusive lock, applies fn and
	// persists the result in the same transaction. An error from fn aborts
	// the update without side effects.
	UpdateGuarded(ctx context.Context, id int64, fn func(*models.Event) error) (*models.Event, error)
	// DeleteGuarded loads the event under an exclusive lock, runs check and
	// deletes the row (memberships cascade) in the same transaction.
	DeleteGuarded(ctx context.Context, id int64, check func(*models.Event) error) error
}

// IdentityClient resolves a user id to a profile or a not-found outcome.
type IdentityClient interface {
	Lookup(ctx context.Context, userID int64) (*identity.User, error)
}

// Input carries the event fields of a create or update request.
type Input struct {
	Name               string
	Description        string
	StartsAt           time.Time
	EndsAt             time.Time
	Location           string
	RegistrationStatus models.RegistrationStatus
	IsLimited          bool
	ParticipantLimit   *int
}

func (in Input) validate() error {
	if !in.StartsAt.Before(in.EndsAt) {
		return apperr.Validation("event start must be before event end")
	}
	if !in.RegistrationStatus.Valid() {
		return apperr.Validation("unknown registration status %q", in.RegistrationStatus)
	}
	if in.IsLimited {
		if in.ParticipantLimit == nil {
			return apperr.Validation("participant limit must be set for a limited event")
		}
		if *in.ParticipantLimit < 0 {
			return apperr.Validation("participant limit must be zero or positive")
		}
	} else if in.ParticipantLimit != nil {
		return apperr.Validation("participant limit must be omitted for an unlimited event")
	}
	return nil
}

// Service implements the event business rules: identity-gated creation,
// owner-only mutation, participant-limit monotonicity and the created-at
// visibility projection.
type Service struct {
	store  Store
	users  IdentityClient
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates an event service.
func NewService(store Store, users IdentityClient, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, users: users, logger: logger, now: time.Now}
}

// Create persists a new event owned by requesterID. The requester must be
// known to the user service; an unknown user is rejected as forbidden.
func (s *Service) Create(ctx context.Context, in Input, requesterID int64) (View, error) {
	if _, err := s.users.Lookup(ctx, requesterID); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return View{}, apperr.Forbidden("user(id=%d) is not registered", requesterID)
		}
		return View{}, err
	}
	if err := in.validate(); err != nil {
		return View{}, err
	}

	e := &models.Event{
		Name:               in.Name,
		Description:        in.Description,
		StartsAt:           in.StartsAt,
		EndsAt:             in.EndsAt,
		Location:           in.Location,
		OwnerID:            requesterID,
		RegistrationStatus: in.RegistrationStatus,
		IsLimited:          in.IsLimited,
		ParticipantLimit:   in.ParticipantLimit,
		CreatedAt:          s.now(),
	}
	if err := s.store.Create(ctx, e); err != nil {
		return View{}, err
	}

	s.logger.Info("event created", zap.Int64("event_id", e.ID), zap.Int64("owner_id", e.OwnerID))

	return NewView(e, true), nil
}

// Update overwrites the event's fields from in. Only the owner may update,
// the limited flag never returns to false and the participant limit never
// decreases. The ownership check and the write happen atomically.
func (s *Service) Update(ctx context.Context, id int64, in Input, requesterID int64) (View, error) {
	if err := in.validate(); err != nil {
		return View{}, err
	}

	updated, err := s.store.UpdateGuarded(ctx, id, func(e *models.Event) error {
		if e.OwnerID != requesterID {
			return apperr.Forbidden("not authorized to update this event")
		}
		if e.IsLimited {
			if !in.IsLimited {
				return apperr.Validation("participant limit cannot be reduced")
			}
			if in.ParticipantLimit != nil && *in.ParticipantLimit < *e.ParticipantLimit {
				return apperr.Validation("participant limit cannot be reduced")
			}
		}
		e.Name = in.Name
		e.Description = in.Description
		e.StartsAt = in.StartsAt
		e.EndsAt = in.EndsAt
		e.Location = in.Location
		e.RegistrationStatus = in.RegistrationStatus
		e.IsLimited = in.IsLimited
		e.ParticipantLimit = in.ParticipantLimit
		return nil
	})
	if err != nil {
		return View{}, err
	}

	s.logger.Info("event updated", zap.Int64("event_id", updated.ID), zap.Int64("owner_id", updated.OwnerID))

	return NewView(updated, true), nil
}

// Get returns the event view. The created timestamp is included only when
// the requester is the owner; a nil requester is anonymous.
func (s *Service) Get(ctx context.Context, id int64, requesterID *int64) (View, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	forOwner := requesterID != nil && *requesterID == e.OwnerID
	return NewView(e, forOwner), nil
}

// List returns a page of events, newest-created first, optionally filtered
// by owner and registration status. List views never carry the created
// timestamp.
func (s *Service) List(ctx context.Context, p ListParams) ([]View, error) {
	if p.Status != nil && !p.Status.Valid() {
		return nil, apperr.Validation("unknown registration status %q", *p.Status)
	}
	list, err := s.store.List(ctx, p)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(list))
	for i := range list {
		views = append(views, NewView(&list[i], false))
	}
	return views, nil
}

// Delete removes the event; membership rows cascade. Only the owner may
// delete.
func (s *Service) Delete(ctx context.Context, id int64, requesterID int64) error {
	err := s.store.DeleteGuarded(ctx, id, func(e *models.Event) error {
		if e.OwnerID != requesterID {
			return apperr.Forbidden("not authorized to delete this event")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("event deleted", zap.Int64("event_id", id), zap.Int64("requester_id", requesterID))

	return nil
}

// GetInternal returns the raw entity for the team service, which needs the
// owner id for authorization.
func (s *Service) GetInternal(ctx context.Context, id int64) (*models.Event, error) {
	return s.store.GetByID(ctx, id)
}
