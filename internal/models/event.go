package models

import "time"

// RegistrationStatus is the registration state of an event.
type RegistrationStatus string

const (
	RegistrationOpen      RegistrationStatus = "OPEN"
	RegistrationClosed    RegistrationStatus = "CLOSED"
	RegistrationSuspended RegistrationStatus = "SUSPENDED"
)

// Valid reports whether s is one of the known registration statuses.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationOpen, RegistrationClosed, RegistrationSuspended:
		return true
	}
	return false
}

// Event represents an event owned by a single user.
// ParticipantLimit is non-nil iff IsLimited is true; once limited, the limit
// never decreases and IsLimited never returns to false.
type Event struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	StartsAt           time.Time          `json:"starts_at"`
	EndsAt             time.Time          `json:"ends_at"`
	Location           string             `json:"location"`
	OwnerID            int64              `json:"owner_id"`
	RegistrationStatus RegistrationStatus `json:"registration_status"`
	IsLimited          bool               `json:"is_limited"`
	ParticipantLimit   *int               `json:"participant_limit,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}
