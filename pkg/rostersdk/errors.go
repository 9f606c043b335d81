package rostersdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/roster/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest        = "invalid_request"
	ErrorCodeInvalidToken          = "invalid_token"
	ErrorCodeInvalidCredentials    = "invalid_credentials"
	ErrorCodeEmailNotConfirmed     = "email_not_confirmed"
	ErrorCodeForbidden             = "forbidden"
	ErrorCodeNotFound              = "not_found"
	ErrorCodeInvitationExpired     = "invitation_expired"
	ErrorCodeInvitationUsed        = "invitation_used"
	ErrorCodeIdentityExists        = "identity_exists"
	ErrorCodeAlreadyMember         = "already_member"
	ErrorCodeLastAdmin             = "last_admin"
	ErrorCodeRegisteredNotAccepted = "registered_not_accepted"
	ErrorCodeRateLimitExceeded     = "rate_limit_exceeded"
	ErrorCodeServerError           = "server_error"
)

// APIError is an error response from the roster service. Handlers use it to
// write responses; the client returns it for every unexpected status.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`

	// Identity is set on ErrorCodeRegisteredNotAccepted
	Identity *IdentityInfo `json:"identity,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches another *APIError by code, so errors.Is(err, ErrNotFound)
// works on errors returned by the client.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes the error as JSON with its status code.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
		Identity:         e.Identity,
	})
}

// NewAPIError creates an APIError with a custom description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the session token is missing, invalid or expired",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid email or password",
	}

	ErrEmailNotConfirmed = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeEmailNotConfirmed,
		Description: "email address not confirmed",
	}

	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "not allowed to perform this action",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	ErrInvitationExpired = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeInvitationExpired,
		Description: "invitation has expired",
	}

	ErrInvitationUsed = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeInvitationUsed,
		Description: "invitation was already used by another account",
	}

	ErrIdentityExists = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeIdentityExists,
		Description: "an account with this email already exists",
	}

	ErrAlreadyMember = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeAlreadyMember,
		Description: "address already belongs to a member of this organization",
	}

	ErrLastAdmin = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeLastAdmin,
		Description: "organization must keep at least one admin",
	}

	ErrRegisteredNotAccepted = &APIError{
		StatusCode:  http.StatusAccepted,
		Code:        ErrorCodeRegisteredNotAccepted,
		Description: "account created but invitation not accepted",
	}

	ErrRateLimited = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeRateLimitExceeded,
		Description: "too many requests",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns an unexpected response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Identity:    errResp.Identity,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
