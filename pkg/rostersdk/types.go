package rostersdk

import (
	"time"

	"github.com/aussiebroadwan/roster/pkg/jwtx"
)

// ============================================================================
// Shared Types
// ============================================================================

// ErrorResponse is the JSON body of every non-2xx response. A partial
// registration (HTTP 202) also uses it and carries the created identity.
type ErrorResponse struct {
	// Error is a machine readable code (e.g., "invitation_expired")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`

	// Identity is set when error is "registered_not_accepted"
	Identity *IdentityInfo `json:"identity,omitempty"`
}

// Warning is a soft failure reported next to an otherwise successful result.
type Warning struct {
	// Code is "email_mismatch" or "notification_failed"
	Code    string `json:"code"`
	Message string `json:"message"`
}

type IdentityInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type OrganizationInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type MembershipInfo struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	IdentityID     string    `json:"identity_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// InvitationInfo never carries the acceptance token.
type InvitationInfo struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	InvitedBy      string    `json:"invited_by"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ============================================================================
// Identity Types
// ============================================================================

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by login and by a completed registration.
type SessionResponse struct {
	// AccessToken is an EdDSA-signed JWT, verifiable against the JWKS endpoint
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresAt is when the access token stops being accepted
	ExpiresAt time.Time `json:"expires_at"`

	Identity IdentityInfo `json:"identity"`
}

// ============================================================================
// Organization Types
// ============================================================================

type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

type CreateOrganizationResponse struct {
	Organization OrganizationInfo `json:"organization"`
	Membership   MembershipInfo   `json:"membership"`
}

type ListOrganizationsResponse struct {
	Memberships []MembershipInfo `json:"memberships"`
}

type ListMembersResponse struct {
	Members []MembershipInfo `json:"members"`
}

type UpdateMemberRoleRequest struct {
	// Role is admin, editor or viewer
	Role string `json:"role"`
}

// ============================================================================
// Invitation Types
// ============================================================================

type CreateInvitationRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`

	// Role defaults to viewer when omitted
	Role string `json:"role,omitempty"`

	// Locale selects the email language (BCP 47, e.g. "pt-BR")
	Locale string `json:"locale,omitempty"`
}

type CreateInvitationResponse struct {
	Invitation InvitationInfo `json:"invitation"`

	// AcceptURL is the link mailed to the invitee
	AcceptURL string `json:"accept_url"`

	// Reused is true when an existing pending invitation was refreshed
	Reused   bool      `json:"reused"`
	Warnings []Warning `json:"warnings,omitempty"`
}

type ListInvitationsResponse struct {
	Invitations []InvitationInfo `json:"invitations"`
}

type ResendInvitationResponse struct {
	// Resent is false when the invitation is missing, used or expired
	Resent   bool      `json:"resent"`
	Warnings []Warning `json:"warnings,omitempty"`
}

type InvitationLookupResponse struct {
	Invitation       InvitationInfo `json:"invitation"`
	OrganizationName string         `json:"organization_name"`
	Expired          bool           `json:"expired"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

type AcceptInvitationResponse struct {
	Membership    MembershipInfo `json:"membership"`
	AlreadyMember bool           `json:"already_member"`
	Warnings      []Warning      `json:"warnings,omitempty"`
}

type RegisterRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`

	// Email defaults to the invited address
	Email string `json:"email,omitempty"`

	// Name defaults to the name on the invitation
	Name string `json:"name,omitempty"`
}

type RegisterResponse struct {
	Session    SessionResponse `json:"session"`
	Membership MembershipInfo  `json:"membership"`
	Warnings   []Warning       `json:"warnings,omitempty"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	// Status is "ok" or "degraded"
	Status string `json:"status"`

	// Uptime is the service uptime as a Go duration string
	Uptime string `json:"uptime"`

	Version string `json:"version"`

	// Checks is only present on /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the JSON Web Key Set served at /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS
