// Bindings for queries/organizations.sql.

package gen

import (
	"context"
	"time"
)

const createOrganization = `-- name: CreateOrganization :exec
INSERT INTO organizations (id, name, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`

type CreateOrganizationParams struct {
	ID        string
	Name      string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateOrganization(ctx context.Context, arg CreateOrganizationParams) error {
	_, err := q.db.ExecContext(ctx, createOrganization,
		arg.ID,
		arg.Name,
		arg.CreatedBy,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getOrganizationByID = `-- name: GetOrganizationByID :one
SELECT id, name, created_by, created_at, updated_at FROM organizations WHERE id = ?
`

func (q *Queries) GetOrganizationByID(ctx context.Context, id string) (Organization, error) {
	row := q.db.QueryRowContext(ctx, getOrganizationByID, id)
	var i Organization
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.CreatedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
