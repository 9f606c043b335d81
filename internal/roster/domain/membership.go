package domain

import "time"

type Membership struct {
	ID             string
	OrganizationID string
	IdentityID     string
	Email          string // the invited address
	IdentityEmail  string // the address the identity joined with, normalized
	Name           string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
