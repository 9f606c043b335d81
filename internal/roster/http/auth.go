package http

import (
	"net/http"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

// AuthHandler fronts the local identity provider.
type AuthHandler struct {
	Identities service.IdentityProvider
}

// HandleSignup godoc
//
//	@Summary		Sign up
//	@Description	Create a local identity. The address is unconfirmed until it accepts an invitation sent to it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.SignupRequest	true	"Sign-up request"
//	@Success		201		{object}	rostersdk.IdentityInfo	"id, email, name"
//	@Failure		400		{object}	rostersdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	rostersdk.ErrorResponse	"identity_exists"
//	@Failure		429		{object}	rostersdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/v1/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	id, err := h.Identities.CreateIdentity(r.Context(), service.NewIdentity{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identityInfo(id))
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchange email and password for an EdDSA-signed session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		rostersdk.LoginRequest		true	"Login request"
//	@Success		200		{object}	rostersdk.SessionResponse	"access_token, token_type, expires_at, identity"
//	@Failure		400		{object}	rostersdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	rostersdk.ErrorResponse		"invalid_credentials"
//	@Failure		403		{object}	rostersdk.ErrorResponse		"email_not_confirmed"
//	@Failure		429		{object}	rostersdk.ErrorResponse		"rate_limit_exceeded"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req rostersdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	session, err := h.Identities.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionResponse(session))
}
