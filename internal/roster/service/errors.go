package service

import (
	"errors"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
)

var (
	ErrInvitationNotFound       = errors.New("invitation not found")
	ErrInvitationExpired        = errors.New("invitation has expired")
	ErrAlreadyUsedByOther       = errors.New("invitation was already used by another account")
	ErrInvalidInvitationRequest = errors.New("invalid invitation request")
	ErrInvalidRole              = errors.New("invalid role")
	ErrAlreadyMember            = errors.New("address already belongs to a member of this organization")

	ErrIdentityExists       = errors.New("an account with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailNotConfirmed    = errors.New("email address not confirmed")
	ErrInvalidRegistration  = errors.New("invalid registration request")
	ErrInvalidOrganization  = errors.New("invalid organization request")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrMemberNotFound       = errors.New("member not found")

	ErrForbidden = errors.New("not allowed to perform this action")
	ErrNotMember = errors.New("not a member of this organization")
	ErrLastAdmin = errors.New("organization must keep at least one admin")

	// ErrRegisteredButNotAccepted marks a registration whose identity was
	// created but whose acceptance failed. The identity is not rolled back.
	ErrRegisteredButNotAccepted = errors.New("account created but invitation not accepted")
)

// PartialRegistrationError reports RegisterAndAccept stopping after the
// identity was created. errors.Is matches both ErrRegisteredButNotAccepted
// and the underlying cause.
type PartialRegistrationError struct {
	Identity domain.Identity
	Err      error
}

func (e *PartialRegistrationError) Error() string {
	return ErrRegisteredButNotAccepted.Error() + ": " + e.Err.Error()
}

func (e *PartialRegistrationError) Unwrap() []error {
	return []error{ErrRegisteredButNotAccepted, e.Err}
}
