package http

import (
	"net/http"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

// actor returns the authenticated caller. AuthnMiddleware guarantees it on
// secured routes.
func actor(r *http.Request) (domain.Identity, bool) {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok || p.ID == "" {
		return domain.Identity{}, false
	}
	return domain.Identity{ID: p.ID, Email: p.Email, Name: p.Name}, true
}

// pathID returns the named path parameter when it is a well formed id.
// Malformed ids cannot match a row, so they answer 404 without a store read.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if !idx.Valid(id) {
		rostersdk.ErrNotFound.WriteError(w)
		return "", false
	}
	return id, true
}

func identityInfo(id domain.Identity) *rostersdk.IdentityInfo {
	return &rostersdk.IdentityInfo{ID: id.ID, Email: id.Email, Name: id.Name}
}

func sessionResponse(s service.Session) rostersdk.SessionResponse {
	return rostersdk.SessionResponse{
		AccessToken: s.AccessToken,
		TokenType:   s.TokenType,
		ExpiresAt:   s.ExpiresAt,
		Identity:    *identityInfo(s.Identity),
	}
}

func organizationInfo(o domain.Organization) rostersdk.OrganizationInfo {
	return rostersdk.OrganizationInfo{
		ID:        o.ID,
		Name:      o.Name,
		CreatedBy: o.CreatedBy,
		CreatedAt: o.CreatedAt,
	}
}

func membershipInfo(m domain.Membership) rostersdk.MembershipInfo {
	return rostersdk.MembershipInfo{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		IdentityID:     m.IdentityID,
		Email:          m.Email,
		Name:           m.Name,
		Role:           m.Role.String(),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func membershipInfos(ms []domain.Membership) []rostersdk.MembershipInfo {
	out := make([]rostersdk.MembershipInfo, 0, len(ms))
	for _, m := range ms {
		out = append(out, membershipInfo(m))
	}
	return out
}

func invitationInfo(inv domain.Invitation) rostersdk.InvitationInfo {
	return rostersdk.InvitationInfo{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		Name:           inv.Name,
		Role:           inv.Role.String(),
		InvitedBy:      inv.InvitedBy,
		ExpiresAt:      inv.ExpiresAt,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

func warnings(ws []domain.Warning) []rostersdk.Warning {
	if len(ws) == 0 {
		return nil
	}
	out := make([]rostersdk.Warning, 0, len(ws))
	for _, w := range ws {
		out = append(out, rostersdk.Warning{Code: string(w.Code), Message: w.Message})
	}
	return out
}
