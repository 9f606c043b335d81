// Bindings for queries/memberships.sql.

package gen

import (
	"context"
	"time"
)

const countMembershipsByRole = `-- name: CountMembershipsByRole :one
SELECT COUNT(*) FROM memberships WHERE organization_id = ? AND role = ?
`

type CountMembershipsByRoleParams struct {
	OrganizationID string
	Role           string
}

func (q *Queries) CountMembershipsByRole(ctx context.Context, arg CountMembershipsByRoleParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countMembershipsByRole, arg.OrganizationID, arg.Role)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteMembership = `-- name: DeleteMembership :execrows
DELETE FROM memberships WHERE id = ?
`

func (q *Queries) DeleteMembership(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMembership, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getMembership = `-- name: GetMembership :one
SELECT id, organization_id, identity_id, email, name, role, created_at, updated_at, identity_email FROM memberships WHERE organization_id = ? AND identity_id = ?
`

type GetMembershipParams struct {
	OrganizationID string
	IdentityID     string
}

func (q *Queries) GetMembership(ctx context.Context, arg GetMembershipParams) (Membership, error) {
	row := q.db.QueryRowContext(ctx, getMembership, arg.OrganizationID, arg.IdentityID)
	var i Membership
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.IdentityID,
		&i.Email,
		&i.Name,
		&i.Role,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.IdentityEmail,
	)
	return i, err
}

const getMembershipByEmail = `-- name: GetMembershipByEmail :one
SELECT id, organization_id, identity_id, email, name, role, created_at, updated_at, identity_email FROM memberships
WHERE organization_id = ? AND (email = ? OR identity_email = ?)
LIMIT 1
`

type GetMembershipByEmailParams struct {
	OrganizationID string
	Email          string
	IdentityEmail  string
}

func (q *Queries) GetMembershipByEmail(ctx context.Context, arg GetMembershipByEmailParams) (Membership, error) {
	row := q.db.QueryRowContext(ctx, getMembershipByEmail, arg.OrganizationID, arg.Email, arg.IdentityEmail)
	var i Membership
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.IdentityID,
		&i.Email,
		&i.Name,
		&i.Role,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.IdentityEmail,
	)
	return i, err
}

const getMembershipByID = `-- name: GetMembershipByID :one
SELECT id, organization_id, identity_id, email, name, role, created_at, updated_at, identity_email FROM memberships WHERE id = ?
`

func (q *Queries) GetMembershipByID(ctx context.Context, id string) (Membership, error) {
	row := q.db.QueryRowContext(ctx, getMembershipByID, id)
	var i Membership
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.IdentityID,
		&i.Email,
		&i.Name,
		&i.Role,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.IdentityEmail,
	)
	return i, err
}

const insertMembershipIfAbsent = `-- name: InsertMembershipIfAbsent :execrows
INSERT INTO memberships (
    id, organization_id, identity_id, email, identity_email, name, role,
    created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (organization_id, identity_id) DO NOTHING
`

type InsertMembershipIfAbsentParams struct {
	ID             string
	OrganizationID string
	IdentityID     string
	Email          string
	IdentityEmail  string
	Name           string
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (q *Queries) InsertMembershipIfAbsent(ctx context.Context, arg InsertMembershipIfAbsentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertMembershipIfAbsent,
		arg.ID,
		arg.OrganizationID,
		arg.IdentityID,
		arg.Email,
		arg.IdentityEmail,
		arg.Name,
		arg.Role,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listMemberships = `-- name: ListMemberships :many
SELECT id, organization_id, identity_id, email, name, role, created_at, updated_at, identity_email FROM memberships
WHERE organization_id = ?
ORDER BY created_at ASC, id ASC
`

func (q *Queries) ListMemberships(ctx context.Context, organizationID string) ([]Membership, error) {
	rows, err := q.db.QueryContext(ctx, listMemberships, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Membership{}
	for rows.Next() {
		var i Membership
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.IdentityID,
			&i.Email,
			&i.Name,
			&i.Role,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.IdentityEmail,
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

const listMembershipsForIdentity = `-- name: ListMembershipsForIdentity :many
SELECT id, organization_id, identity_id, email, name, role, created_at, updated_at, identity_email FROM memberships
WHERE identity_id = ?
ORDER BY created_at ASC, id ASC
`

func (q *Queries) ListMembershipsForIdentity(ctx context.Context, identityID string) ([]Membership, error) {
	rows, err := q.db.QueryContext(ctx, listMembershipsForIdentity, identityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Membership{}
	for rows.Next() {
		var i Membership
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.IdentityID,
			&i.Email,
			&i.Name,
			&i.Role,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.IdentityEmail,
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

const updateMembershipRole = `-- name: UpdateMembershipRole :execrows
UPDATE memberships SET role = ?, updated_at = ? WHERE id = ?
`

type UpdateMembershipRoleParams struct {
	Role      string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateMembershipRole(ctx context.Context, arg UpdateMembershipRoleParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateMembershipRole,
		arg.Role,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
