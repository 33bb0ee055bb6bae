package user

import "github.com/BruksfildServices01/orders-api/internal/httperr"

type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleUser  Role = "ROLE_USER"
)

func ParseRole(v string) (Role, error) {
	switch Role(v) {
	case RoleAdmin, RoleUser:
		return Role(v), nil
	}
	return "", httperr.ErrBusiness("invalid_role")
}

// Roles expands a stored role into the granted set.
// Every user holds ROLE_USER.
func Roles(stored string) []string {
	if stored == "" || Role(stored) == RoleUser {
		return []string{string(RoleUser)}
	}
	return []string{stored, string(RoleUser)}
}

func IsAdmin(roles []string) bool {
	for _, r := range roles {
		if Role(r) == RoleAdmin {
			return true
		}
	}
	return false
}
