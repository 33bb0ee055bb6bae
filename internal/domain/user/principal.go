package user

import "github.com/google/uuid"

// Principal is the authenticated caller of an operation.
type Principal struct {
	ID    uuid.UUID
	Roles []string
}

func (p Principal) IsAdmin() bool {
	return IsAdmin(p.Roles)
}

// CanAccess reports whether p may act on a record owned by ownerID.
func (p Principal) CanAccess(ownerID uuid.UUID) bool {
	return p.IsAdmin() || p.ID == ownerID
}
