package service

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
)

// InvitePolicy decides which members may create, resend and delete
// invitations.
type InvitePolicy string

const (
	InvitePolicyAdmins  InvitePolicy = "admins"
	InvitePolicyMembers InvitePolicy = "members"
)

func ParseInvitePolicy(s string) (InvitePolicy, error) {
	switch InvitePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", InvitePolicyAdmins:
		return InvitePolicyAdmins, nil
	case InvitePolicyMembers:
		return InvitePolicyMembers, nil
	default:
		return "", fmt.Errorf("unknown invite policy %q", s)
	}
}

// CanManageInvitations reports whether a member with the given role may
// manage invitations under p.
func (p InvitePolicy) CanManageInvitations(role domain.Role) bool {
	if role.IsAdmin() {
		return true
	}
	return p == InvitePolicyMembers && role.Valid()
}

// CanGrant reports whether a member with role may hand out target. Only
// admins may invite admins, whatever the policy.
func (p InvitePolicy) CanGrant(role, target domain.Role) bool {
	if !p.CanManageInvitations(role) {
		return false
	}
	return role.IsAdmin() || !target.IsAdmin()
}
