package domain

import (
	"errors"
	"strings"
)

// Role is an organization-scoped membership role. Roles are flat; there is
// no inheritance beyond what Can* helpers encode.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole accepts the canonical names plus the legacy aliases
// "moderator" (editor) and "member" (viewer).
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "editor", "moderator":
		return RoleEditor, nil
	case "viewer", "member":
		return RoleViewer, nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string { return string(r) }

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// IsAdmin reports whether r grants organization administration.
func (r Role) IsAdmin() bool { return r == RoleAdmin }
