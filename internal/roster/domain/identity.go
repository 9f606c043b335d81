package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Identity is an authenticated principal as seen by the lifecycle engine.
// The identity provider owns it; roster only needs the id and email.
type Identity struct {
	ID    string
	Email string
	Name  string
}

// Credential is the local identity provider's stored record.
type Credential struct {
	ID             string
	Email          string
	Name           string
	PasswordHash   string     // argon2id PHC string
	EmailConfirmed *time.Time // nil until confirmed
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Identity returns the public view of the credential.
func (c Credential) Identity() Identity {
	return Identity{ID: c.ID, Email: c.Email, Name: c.Name}
}

// NormalizeEmail trims and lower-cases an address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailsMatch compares two addresses case-insensitively.
func EmailsMatch(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}

// ValidEmail reports whether email is a bare RFC 5322 address: no display
// name, comments or surrounding whitespace.
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Name == "" && addr.Address == email
}
