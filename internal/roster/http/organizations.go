package http

import (
	"net/http"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

type OrganizationsHandler struct {
	Memberships *service.MembershipService
}

// HandleCreate godoc
//
//	@Summary		Create organization
//	@Description	Create an organization. The caller becomes its first admin.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.CreateOrganizationRequest		true	"Organization"
//	@Success		201		{object}	rostersdk.CreateOrganizationResponse	"organization, membership"
//	@Failure		400		{object}	rostersdk.ErrorResponse					"error, error_description"
//	@Failure		401		{object}	rostersdk.ErrorResponse					"invalid_token"
//	@Security		BearerAuth
//	@Router			/v1/organizations [post].
func (h *OrganizationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req rostersdk.CreateOrganizationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	org, m, err := h.Memberships.CreateOrganization(r.Context(), req.Name, caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, rostersdk.CreateOrganizationResponse{
		Organization: organizationInfo(org),
		Membership:   membershipInfo(m),
	})
}

// HandleListMine godoc
//
//	@Summary		List my organizations
//	@Description	List the caller's memberships across organizations.
//	@Tags			Organizations
//	@Produce		json
//	@Success		200	{object}	rostersdk.ListOrganizationsResponse	"memberships"
//	@Failure		401	{object}	rostersdk.ErrorResponse				"invalid_token"
//	@Security		BearerAuth
//	@Router			/v1/organizations [get].
func (h *OrganizationsHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	ms, err := h.Memberships.OrganizationsFor(r.Context(), caller.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.ListOrganizationsResponse{Memberships: membershipInfos(ms)})
}

// HandleListMembers godoc
//
//	@Summary		List members
//	@Description	List an organization's members. Any member may list.
//	@Tags			Organizations
//	@Produce		json
//	@Param			org	path		string							true	"Organization ID"
//	@Success		200	{object}	rostersdk.ListMembersResponse	"members"
//	@Failure		403	{object}	rostersdk.ErrorResponse			"forbidden"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{org}/members [get].
func (h *OrganizationsHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	ms, err := h.Memberships.ListMembers(r.Context(), r.PathValue("org"), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.ListMembersResponse{Members: membershipInfos(ms)})
}

// HandleUpdateMember godoc
//
//	@Summary		Change a member's role
//	@Description	Admin only. The last admin cannot be demoted.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Param			org		path		string							true	"Organization ID"
//	@Param			member	path		string							true	"Membership ID"
//	@Param			request	body		rostersdk.UpdateMemberRoleRequest	true	"New role"
//	@Success		200		{object}	rostersdk.MembershipInfo		"membership"
//	@Failure		400		{object}	rostersdk.ErrorResponse			"invalid_request"
//	@Failure		403		{object}	rostersdk.ErrorResponse			"forbidden"
//	@Failure		404		{object}	rostersdk.ErrorResponse			"not_found"
//	@Failure		409		{object}	rostersdk.ErrorResponse			"last_admin"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{org}/members/{member} [patch].
func (h *OrganizationsHandler) HandleUpdateMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req rostersdk.UpdateMemberRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	member, ok := pathID(w, r, "member")
	if !ok {
		return
	}

	m, err := h.Memberships.UpdateRole(r.Context(), r.PathValue("org"), member, req.Role, caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, membershipInfo(m))
}

// HandleRemoveMember godoc
//
//	@Summary		Remove a member
//	@Description	Admins may remove anyone; members may remove themselves. The last admin cannot leave.
//	@Tags			Organizations
//	@Param			org		path	string	true	"Organization ID"
//	@Param			member	path	string	true	"Membership ID"
//	@Success		204
//	@Failure		403	{object}	rostersdk.ErrorResponse	"forbidden"
//	@Failure		404	{object}	rostersdk.ErrorResponse	"not_found"
//	@Failure		409	{object}	rostersdk.ErrorResponse	"last_admin"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{org}/members/{member} [delete].
func (h *OrganizationsHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	member, ok := pathID(w, r, "member")
	if !ok {
		return
	}

	if err := h.Memberships.RemoveMember(r.Context(), r.PathValue("org"), member, caller); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
