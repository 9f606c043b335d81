package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// writeServiceError maps a service error onto its HTTP response. Anything
// unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var partial *service.PartialRegistrationError
	if errors.As(err, &partial) {
		e := *rostersdk.ErrRegisteredNotAccepted
		e.Identity = identityInfo(partial.Identity)
		e.Description = partial.Error()
		e.WriteError(w)
		return
	}

	switch {
	case errors.Is(err, httpx.ErrBadBody):
		rostersdk.NewAPIError(http.StatusBadRequest, rostersdk.ErrorCodeInvalidRequest, "invalid JSON body").WriteError(w)
	case errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrOrganizationNotFound),
		errors.Is(err, service.ErrMemberNotFound):
		rostersdk.NewAPIError(http.StatusNotFound, rostersdk.ErrorCodeNotFound, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrInvitationExpired):
		rostersdk.ErrInvitationExpired.WriteError(w)
	case errors.Is(err, service.ErrAlreadyUsedByOther):
		rostersdk.ErrInvitationUsed.WriteError(w)
	case errors.Is(err, service.ErrIdentityExists):
		rostersdk.ErrIdentityExists.WriteError(w)
	case errors.Is(err, service.ErrAlreadyMember):
		rostersdk.ErrAlreadyMember.WriteError(w)
	case errors.Is(err, service.ErrLastAdmin):
		rostersdk.ErrLastAdmin.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		rostersdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrEmailNotConfirmed):
		rostersdk.ErrEmailNotConfirmed.WriteError(w)
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotMember):
		rostersdk.NewAPIError(http.StatusForbidden, rostersdk.ErrorCodeForbidden, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrInvalidInvitationRequest),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidOrganization):
		rostersdk.NewAPIError(http.StatusBadRequest, rostersdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
	case errors.Is(err, service.ErrInvalidRegistration):
		// The joined password policy error is safe to show.
		rostersdk.NewAPIError(http.StatusBadRequest, rostersdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		rostersdk.ErrServerError.WriteError(w)
	}
}
