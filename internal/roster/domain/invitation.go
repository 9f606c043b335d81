package domain

import "time"

// DefaultInvitationTTL is how long an invitation stays acceptable.
const DefaultInvitationTTL = 7 * 24 * time.Hour

type Invitation struct {
	ID             string
	OrganizationID string
	Email          string // normalized, see NormalizeEmail
	Name           string
	Role           Role
	TokenHash      string // SHA-256 fingerprint of the acceptance token
	InvitedBy      string // identity id of the sender
	Locale         string // language tag for emails, empty for the default
	ExpiresAt      time.Time
	UsedAt         *time.Time // nil while pending
	UsedBy         string     // empty while pending
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Pending reports whether the invitation has not been consumed.
func (i Invitation) Pending() bool {
	return i.UsedAt == nil
}

// Expired reports whether the invitation can no longer be accepted at now.
// Used invitations are never considered expired.
func (i Invitation) Expired(now time.Time) bool {
	return i.Pending() && now.After(i.ExpiresAt)
}

// Acceptable reports whether the invitation is pending and unexpired.
func (i Invitation) Acceptable(now time.Time) bool {
	return i.Pending() && !i.Expired(now)
}
