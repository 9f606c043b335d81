// Bindings for queries/invitations.sql.

package gen

import (
	"context"
	"database/sql"
	"time"
)

const createInvitation = `-- name: CreateInvitation :exec
INSERT INTO invitations (
    id, organization_id, email, name, role, token_hash, invited_by,
    locale, expires_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateInvitationParams struct {
	ID             string
	OrganizationID string
	Email          string
	Name           string
	Role           string
	TokenHash      string
	InvitedBy      string
	Locale         string
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Queries) CreateInvitation(ctx context.Context, arg CreateInvitationParams) error {
	_, err := q.db.ExecContext(ctx, createInvitation,
		arg.ID,
		arg.OrganizationID,
		arg.Email,
		arg.Name,
		arg.Role,
		arg.TokenHash,
		arg.InvitedBy,
		arg.Locale,
		arg.ExpiresAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const consumePendingInvitationsForEmail = `-- name: ConsumePendingInvitationsForEmail :execrows
UPDATE invitations
SET used_at = ?, used_by = ?, updated_at = ?
WHERE organization_id = ? AND email = ? AND id != ? AND used_at IS NULL
`

type ConsumePendingInvitationsForEmailParams struct {
	UsedAt         sql.NullTime
	UsedBy         sql.NullString
	UpdatedAt      time.Time
	OrganizationID string
	Email          string
	ID             string
}

func (q *Queries) ConsumePendingInvitationsForEmail(ctx context.Context, arg ConsumePendingInvitationsForEmailParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, consumePendingInvitationsForEmail,
		arg.UsedAt,
		arg.UsedBy,
		arg.UpdatedAt,
		arg.OrganizationID,
		arg.Email,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteExpiredPendingInvitation = `-- name: DeleteExpiredPendingInvitation :execrows
DELETE FROM invitations
WHERE organization_id = ? AND email = ? AND used_at IS NULL AND expires_at < ?
`

type DeleteExpiredPendingInvitationParams struct {
	OrganizationID string
	Email          string
	ExpiresAt      time.Time
}

func (q *Queries) DeleteExpiredPendingInvitation(ctx context.Context, arg DeleteExpiredPendingInvitationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpiredPendingInvitation,
		arg.OrganizationID,
		arg.Email,
		arg.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deletePendingInvitation = `-- name: DeletePendingInvitation :execrows
DELETE FROM invitations WHERE id = ? AND used_at IS NULL
`

func (q *Queries) DeletePendingInvitation(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deletePendingInvitation, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getInvitationByID = `-- name: GetInvitationByID :one
SELECT id, organization_id, email, name, role, token_hash, invited_by, expires_at, used_at, used_by, created_at, updated_at, locale FROM invitations WHERE id = ?
`

func (q *Queries) GetInvitationByID(ctx context.Context, id string) (Invitation, error) {
	row := q.db.QueryRowContext(ctx, getInvitationByID, id)
	var i Invitation
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.Email,
		&i.Name,
		&i.Role,
		&i.TokenHash,
		&i.InvitedBy,
		&i.ExpiresAt,
		&i.UsedAt,
		&i.UsedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Locale,
	)
	return i, err
}

const getInvitationByTokenHash = `-- name: GetInvitationByTokenHash :one
SELECT id, organization_id, email, name, role, token_hash, invited_by, expires_at, used_at, used_by, created_at, updated_at, locale FROM invitations WHERE token_hash = ?
`

func (q *Queries) GetInvitationByTokenHash(ctx context.Context, tokenHash string) (Invitation, error) {
	row := q.db.QueryRowContext(ctx, getInvitationByTokenHash, tokenHash)
	var i Invitation
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.Email,
		&i.Name,
		&i.Role,
		&i.TokenHash,
		&i.InvitedBy,
		&i.ExpiresAt,
		&i.UsedAt,
		&i.UsedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Locale,
	)
	return i, err
}

const getPendingInvitationByEmail = `-- name: GetPendingInvitationByEmail :one
SELECT id, organization_id, email, name, role, token_hash, invited_by, expires_at, used_at, used_by, created_at, updated_at, locale FROM invitations
WHERE organization_id = ? AND email = ? AND used_at IS NULL
`

type GetPendingInvitationByEmailParams struct {
	OrganizationID string
	Email          string
}

func (q *Queries) GetPendingInvitationByEmail(ctx context.Context, arg GetPendingInvitationByEmailParams) (Invitation, error) {
	row := q.db.QueryRowContext(ctx, getPendingInvitationByEmail, arg.OrganizationID, arg.Email)
	var i Invitation
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.Email,
		&i.Name,
		&i.Role,
		&i.TokenHash,
		&i.InvitedBy,
		&i.ExpiresAt,
		&i.UsedAt,
		&i.UsedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Locale,
	)
	return i, err
}

const getPendingInvitationByTokenHash = `-- name: GetPendingInvitationByTokenHash :one
SELECT id, organization_id, email, name, role, token_hash, invited_by, expires_at, used_at, used_by, created_at, updated_at, locale FROM invitations WHERE token_hash = ? AND used_at IS NULL
`

func (q *Queries) GetPendingInvitationByTokenHash(ctx context.Context, tokenHash string) (Invitation, error) {
	row := q.db.QueryRowContext(ctx, getPendingInvitationByTokenHash, tokenHash)
	var i Invitation
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.Email,
		&i.Name,
		&i.Role,
		&i.TokenHash,
		&i.InvitedBy,
		&i.ExpiresAt,
		&i.UsedAt,
		&i.UsedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.Locale,
	)
	return i, err
}

const listPendingInvitations = `-- name: ListPendingInvitations :many
SELECT id, organization_id, email, name, role, token_hash, invited_by, expires_at, used_at, used_by, created_at, updated_at, locale FROM invitations
WHERE organization_id = ? AND used_at IS NULL
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListPendingInvitations(ctx context.Context, organizationID string) ([]Invitation, error) {
	rows, err := q.db.QueryContext(ctx, listPendingInvitations, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Invitation{}
	for rows.Next() {
		var i Invitation
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.Email,
			&i.Name,
			&i.Role,
			&i.TokenHash,
			&i.InvitedBy,
			&i.ExpiresAt,
			&i.UsedAt,
			&i.UsedBy,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.Locale,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markInvitationUsed = `-- name: MarkInvitationUsed :execrows
UPDATE invitations
SET used_at = ?, used_by = ?, updated_at = ?
WHERE id = ? AND used_at IS NULL
`

type MarkInvitationUsedParams struct {
	UsedAt    sql.NullTime
	UsedBy    sql.NullString
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) MarkInvitationUsed(ctx context.Context, arg MarkInvitationUsedParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, markInvitationUsed,
		arg.UsedAt,
		arg.UsedBy,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const purgeInvitations = `-- name: PurgeInvitations :execrows
DELETE FROM invitations
WHERE (used_at IS NULL AND expires_at < ?)
   OR (used_at IS NOT NULL AND used_at < ?)
`

type PurgeInvitationsParams struct {
	ExpiresAt time.Time
	UsedAt    sql.NullTime
}

func (q *Queries) PurgeInvitations(ctx context.Context, arg PurgeInvitationsParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, purgeInvitations,
		arg.ExpiresAt,
		arg.UsedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const refreshPendingInvitation = `-- name: RefreshPendingInvitation :execrows
UPDATE invitations
SET name = ?, role = ?, locale = ?, updated_at = ?
WHERE id = ? AND used_at IS NULL
`

type RefreshPendingInvitationParams struct {
	Name      string
	Role      string
	Locale    string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) RefreshPendingInvitation(ctx context.Context, arg RefreshPendingInvitationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, refreshPendingInvitation,
		arg.Name,
		arg.Role,
		arg.Locale,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const touchPendingInvitation = `-- name: TouchPendingInvitation :execrows
UPDATE invitations
SET updated_at = ?
WHERE id = ? AND used_at IS NULL
`

type TouchPendingInvitationParams struct {
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) TouchPendingInvitation(ctx context.Context, arg TouchPendingInvitationParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, touchPendingInvitation,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
