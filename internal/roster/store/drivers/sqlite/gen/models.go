// Row types, one per table, in the column order of the migrations.

package gen

import (
	"database/sql"
	"time"
)

type Identity struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string
	EmailConfirmedAt sql.NullTime
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Invitation struct {
	ID             string
	OrganizationID string
	Email          string
	Name           string
	Role           string
	TokenHash      string
	InvitedBy      string
	ExpiresAt      time.Time
	UsedAt         sql.NullTime
	UsedBy         sql.NullString
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Locale         string
}

type Membership struct {
	ID             string
	OrganizationID string
	IdentityID     string
	Email          string
	Name           string
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	IdentityEmail  string
}

type Organization struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SigningKey struct {
	ID                  string
	Kid                 string
	Algorithm           string
	PrivateKeyEncrypted []byte
	CreatedAt           time.Time
	RetiredAt           sql.NullTime
	ExpiresAt           time.Time
}
