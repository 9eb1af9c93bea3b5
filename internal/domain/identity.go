package domain

import "github.com/google/uuid"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity is resolved by the external auth collaborator; the core only holds
// a reference to it.
type Identity struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}

func Anonymous() Identity { return Identity{} }

func (i Identity) IsAnonymous() bool { return i.ID == uuid.Nil }

// HasElevatedRole is the capability predicate gating every mutation. Role is
// an opaque string on purpose; the core never enumerates roles beyond this
// check.
func (i Identity) HasElevatedRole() bool {
	return !i.IsAnonymous() && i.Role == RoleAdmin
}
