package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

type InvitationsHandler struct {
	Invitations *service.InvitationService

	// Lookups merges concurrent previews of the same token. The landing
	// page tends to fire several at once.
	Lookups *httpx.Coalescer
}

// HandleCreate godoc
//
//	@Summary		Invite someone
//	@Description	Invite an email address to the organization. A pending invitation for the same address is refreshed and reused.
//	@Description	The accept link is emailed asynchronously; a queueing failure is reported as a notification_failed warning.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			org		path		string								true	"Organization ID"
//	@Param			request	body		rostersdk.CreateInvitationRequest	true	"Invitation"
//	@Success		201		{object}	rostersdk.CreateInvitationResponse	"invitation, accept_url, reused, warnings"
//	@Failure		400		{object}	rostersdk.ErrorResponse				"invalid_request"
//	@Failure		403		{object}	rostersdk.ErrorResponse				"forbidden"
//	@Failure		409		{object}	rostersdk.ErrorResponse				"already_member"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{org}/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req rostersdk.CreateInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	locale := req.Locale
	if locale == "" {
		locale = r.Header.Get("Accept-Language")
	}

	res, err := h.Invitations.Create(r.Context(), service.CreateInvitationInput{
		OrganizationID: r.PathValue("org"),
		Email:          req.Email,
		Name:           req.Name,
		Role:           req.Role,
		Locale:         locale,
	}, caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, rostersdk.CreateInvitationResponse{
		Invitation: invitationInfo(res.Invitation),
		AcceptURL:  res.AcceptURL,
		Reused:     res.Reused,
		Warnings:   warnings(res.Warnings),
	})
}

// HandleList godoc
//
//	@Summary		List pending invitations
//	@Description	Pending, unexpired invitations, newest first. Any member may list.
//	@Tags			Invitations
//	@Produce		json
//	@Param			org	path		string								true	"Organization ID"
//	@Success		200	{object}	rostersdk.ListInvitationsResponse	"invitations"
//	@Failure		403	{object}	rostersdk.ErrorResponse				"forbidden"
//	@Security		BearerAuth
//	@Router			/v1/organizations/{org}/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	invs, err := h.Invitations.ListPending(r.Context(), r.PathValue("org"), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := rostersdk.ListInvitationsResponse{Invitations: make([]rostersdk.InvitationInfo, 0, len(invs))}
	for _, inv := range invs {
		out.Invitations = append(out.Invitations, invitationInfo(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleResend godoc
//
//	@Summary		Resend an invitation
//	@Description	Re-queue the email with the same link. resent is false when the invitation is missing, used or expired.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string								true	"Invitation ID"
//	@Success		200	{object}	rostersdk.ResendInvitationResponse	"resent, warnings"
//	@Failure		403	{object}	rostersdk.ErrorResponse				"forbidden"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/resend [post].
func (h *InvitationsHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	id := r.PathValue("id")
	if !idx.Valid(id) {
		httpx.WriteJSON(w, http.StatusOK, rostersdk.ResendInvitationResponse{Resent: false})
		return
	}

	resent, ws, err := h.Invitations.Resend(r.Context(), id, caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.ResendInvitationResponse{
		Resent:   resent,
		Warnings: warnings(ws),
	})
}

// HandleDelete godoc
//
//	@Summary		Delete an invitation
//	@Description	Delete a pending invitation. Used invitations are kept and answer 404.
//	@Tags			Invitations
//	@Param			id	path	string	true	"Invitation ID"
//	@Success		204
//	@Failure		403	{object}	rostersdk.ErrorResponse	"forbidden"
//	@Failure		404	{object}	rostersdk.ErrorResponse	"not_found"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id} [delete].
func (h *InvitationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.Invitations.Delete(r.Context(), id, caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !deleted {
		rostersdk.ErrNotFound.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleLookup godoc
//
//	@Summary		Preview an invitation
//	@Description	Public. Returns the invitation and organization name behind a token. Expired invitations are returned with expired=true.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string								true	"Acceptance token"
//	@Success		200		{object}	rostersdk.InvitationLookupResponse	"invitation, organization_name, expired"
//	@Failure		404		{object}	rostersdk.ErrorResponse				"not_found"
//	@Router			/v1/invitations/lookup [get].
func (h *InvitationsHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		rostersdk.NewAPIError(http.StatusBadRequest, rostersdk.ErrorCodeInvalidRequest, "token is required").WriteError(w)
		return
	}

	lookup := func(ctx context.Context) (any, error) {
		return h.Invitations.Preview(ctx, token)
	}

	var (
		v      any
		shared bool
		err    error
	)
	if h.Lookups != nil {
		// Keyed by fingerprint so raw tokens never sit in the group map.
		v, shared, err = h.Lookups.Do(r.Context(), cryptox.FingerprintToken(token), lookup)
	} else {
		v, err = lookup(r.Context())
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if shared {
		slogx.FromContext(r.Context()).Debug("invitation lookup coalesced")
	}

	preview := v.(service.InvitationPreview)
	httpx.WriteJSON(w, http.StatusOK, rostersdk.InvitationLookupResponse{
		Invitation:       invitationInfo(preview.Invitation),
		OrganizationName: preview.Organization.Name,
		Expired:          preview.Expired,
	})
}

// HandleAccept godoc
//
//	@Summary		Accept an invitation
//	@Description	Join the organization behind the token as the caller. Repeating an accepted invitation returns the same membership.
//	@Description	Accepting with a different address than the invited one succeeds with an email_mismatch warning.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.AcceptInvitationRequest	true	"Token"
//	@Success		200		{object}	rostersdk.AcceptInvitationResponse	"membership, already_member, warnings"
//	@Failure		404		{object}	rostersdk.ErrorResponse				"not_found"
//	@Failure		409		{object}	rostersdk.ErrorResponse				"invitation_used"
//	@Failure		410		{object}	rostersdk.ErrorResponse				"invitation_expired"
//	@Security		BearerAuth
//	@Router			/v1/invitations/accept [post].
func (h *InvitationsHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(r)
	if !ok {
		rostersdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req rostersdk.AcceptInvitationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.Invitations.Accept(r.Context(), req.Token, caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, rostersdk.AcceptInvitationResponse{
		Membership:    membershipInfo(res.Membership),
		AlreadyMember: res.AlreadyMember,
		Warnings:      warnings(res.Warnings),
	})
}

// HandleRegister godoc
//
//	@Summary		Register and accept
//	@Description	Public. Create an account from an invitation, sign in and join the organization.
//	@Description	If the account is created but the invitation cannot be accepted the response is 202 registered_not_accepted; sign in and accept again.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.RegisterRequest	true	"Registration"
//	@Success		201		{object}	rostersdk.RegisterResponse	"session, membership, warnings"
//	@Success		202		{object}	rostersdk.ErrorResponse		"registered_not_accepted"
//	@Failure		400		{object}	rostersdk.ErrorResponse		"invalid_request"
//	@Failure		404		{object}	rostersdk.ErrorResponse		"not_found"
//	@Failure		409		{object}	rostersdk.ErrorResponse		"identity_exists, invitation_used"
//	@Failure		410		{object}	rostersdk.ErrorResponse		"invitation_expired"
//	@Router			/v1/invitations/register [post].
func (h *InvitationsHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.Invitations.RegisterAndAccept(r.Context(), service.RegisterInput{
		Token:    req.Token,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, rostersdk.RegisterResponse{
		Session:    sessionResponse(res.Session),
		Membership: membershipInfo(res.Membership),
		Warnings:   warnings(res.Warnings),
	})
}
