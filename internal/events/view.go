package events

import (
	"time"

	"github.com/eventworks/backend/internal/models"
)

// View is the outward projection of an event. CreatedAt is present only on
// views built for the owner.
type View struct {
	ID                 int64                     `json:"id"`
	Name               string                    `json:"name"`
	Description        string                    `json:"description"`
	StartsAt           time.Time                 `json:"starts_at"`
	EndsAt             time.Time                 `json:"ends_at"`
	Location           string                    `json:"location"`
	OwnerID            int64                     `json:"owner_id"`
	RegistrationStatus models.RegistrationStatus `json:"registration_status"`
	IsLimited          bool                      `json:"is_limited"`
	ParticipantLimit   *int                      `json:"participant_limit,omitempty"`
	CreatedAt          *time.Time                `json:"created_at,omitempty"`
}

// NewView projects an event for a reader. forOwner controls whether the
// created timestamp is exposed.
func NewView(e *models.Event, forOwner bool) View {
	v := View{
		ID:                 e.ID,
		Name:               e.Name,
		Description:        e.Description,
		StartsAt:           e.StartsAt,
		EndsAt:             e.EndsAt,
		Location:           e.Location,
		OwnerID:            e.OwnerID,
		RegistrationStatus: e.RegistrationStatus,
		IsLimited:          e.IsLimited,
		ParticipantLimit:   e.ParticipantLimit,
	}
	if forOwner {
		createdAt := e.CreatedAt
		v.CreatedAt = &createdAt
	}
	return v
}
