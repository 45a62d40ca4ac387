package models

// Role is the role of an organizing-team member within an event.
// The event owner is never stored as a member; owner authority is implicit
// via Event.OwnerID.
type Role string

const (
	RoleExecutor Role = "EXECUTOR"
	RoleManager  Role = "MANAGER"
)

// Valid reports whether r is a known member role.
func (r Role) Valid() bool {
	return r == RoleExecutor || r == RoleManager
}

// OrgTeamMember links a user to an event's organizing team with a role.
// (EventID, UserID) is unique.
type OrgTeamMember struct {
	ID      int64 `json:"id"`
	EventID int64 `json:"event_id"`
	UserID  int64 `json:"user_id"`
	Role    Role  `json:"role"`
}
