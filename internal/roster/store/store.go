package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrAlreadyUsed is returned by conditional writes on invitations that
	// were consumed between the caller's read and its write.
	ErrAlreadyUsed = errors.New("store: invitation already used")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a Tx can hand out the same repos bound to the
// transaction. Nested transactions are not supported.
type Store interface {
	Invitations() Invitations
	Memberships() Memberships
	Organizations() Organizations
	Identities() Identities
	SigningKeys() SigningKeys

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. fn must only use
	// the repos of the Tx it is given.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Invitations interface {
	// CreateInvitation inserts a pending invitation. It returns
	// ErrAlreadyExists when a pending invitation for the same
	// (organization, email) already exists.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation in any state.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByTokenHash returns an invitation in any state.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// GetPendingInvitationByTokenHash only matches invitations with no used_at.
	GetPendingInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// GetPendingInvitationByEmail returns the pending invitation for the pair,
	// expired or not.
	GetPendingInvitationByEmail(ctx context.Context, organizationID, email string) (domain.Invitation, error)

	// ListPendingInvitations returns unconsumed invitations for an
	// organization, newest first. Expired rows are included.
	ListPendingInvitations(ctx context.Context, organizationID string) ([]domain.Invitation, error)

	// RefreshPendingInvitation updates name, role, locale and updated_at
	// while the invitation is still pending. ErrAlreadyUsed otherwise.
	RefreshPendingInvitation(ctx context.Context, id, name string, role domain.Role, locale string, at time.Time) error

	// TouchPendingInvitation bumps updated_at while pending. ErrAlreadyUsed otherwise.
	TouchPendingInvitation(ctx context.Context, id string, at time.Time) error

	// MarkInvitationUsed consumes a pending invitation. It is the
	// compare-and-set point for acceptance: ErrAlreadyUsed is returned when
	// the row was already consumed.
	MarkInvitationUsed(ctx context.Context, id, usedBy string, at time.Time) error

	// ConsumePendingInvitationsForEmail marks every other pending invitation
	// for (organization, email) used by usedBy. Returns the number affected.
	ConsumePendingInvitationsForEmail(ctx context.Context, organizationID, email, exceptID, usedBy string, at time.Time) (int64, error)

	// DeletePendingInvitation hard-deletes a pending invitation. ErrNotFound
	// when missing or already used.
	DeletePendingInvitation(ctx context.Context, id string) error

	// DeleteExpiredPendingInvitation removes the expired pending invitation
	// for the pair, if any, making room for a fresh one.
	DeleteExpiredPendingInvitation(ctx context.Context, organizationID, email string, now time.Time) (int64, error)

	// PurgeInvitations deletes invitations that expired or were used before cutoff.
	PurgeInvitations(ctx context.Context, cutoff time.Time) (int64, error)
}

type Memberships interface {
	// InsertMembershipIfAbsent creates the membership unless one already
	// exists for (organization, identity), in which case it returns
	// ErrAlreadyExists and writes nothing.
	InsertMembershipIfAbsent(ctx context.Context, m domain.Membership) error

	GetMembership(ctx context.Context, organizationID, identityID string) (domain.Membership, error)
	GetMembershipByID(ctx context.Context, id string) (domain.Membership, error)

	// GetMembershipByEmail matches either the invited address or the
	// address the identity joined with, case-insensitively.
	GetMembershipByEmail(ctx context.Context, organizationID, email string) (domain.Membership, error)

	// ListMemberships returns members ordered by join time.
	ListMemberships(ctx context.Context, organizationID string) ([]domain.Membership, error)

	// ListMembershipsForIdentity returns every organization the identity belongs to.
	ListMembershipsForIdentity(ctx context.Context, identityID string) ([]domain.Membership, error)

	CountMembershipsByRole(ctx context.Context, organizationID string, role domain.Role) (int64, error)

	UpdateMembershipRole(ctx context.Context, id string, role domain.Role, at time.Time) error

	DeleteMembership(ctx context.Context, id string) error
}

type Organizations interface {
	CreateOrganization(ctx context.Context, o domain.Organization) error
	GetOrganizationByID(ctx context.Context, id string) (domain.Organization, error)
}

// Identities backs the local identity provider only.
type Identities interface {
	// CreateIdentity returns ErrAlreadyExists when the email is taken.
	CreateIdentity(ctx context.Context, c domain.Credential) error
	GetIdentityByID(ctx context.Context, id string) (domain.Credential, error)
	GetIdentityByEmail(ctx context.Context, email string) (domain.Credential, error)
	ConfirmIdentityEmail(ctx context.Context, id string, at time.Time) error
}

type SigningKeys interface {
	CreateSigningKey(ctx context.Context, key domain.SigningKey) error

	// ListSigningKeys returns keys that still verify at now, newest first.
	// Retired keys are included.
	ListSigningKeys(ctx context.Context, now time.Time) ([]domain.SigningKey, error)

	// DeleteExpiredSigningKeys removes keys whose expiry is at or before now.
	DeleteExpiredSigningKeys(ctx context.Context, now time.Time) (int64, error)
}
