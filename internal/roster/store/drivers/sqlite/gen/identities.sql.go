// Bindings for queries/identities.sql.

package gen

import (
	"context"
	"database/sql"
	"time"
)

const confirmIdentityEmail = `-- name: ConfirmIdentityEmail :execrows
UPDATE identities
SET email_confirmed_at = COALESCE(email_confirmed_at, ?), updated_at = ?
WHERE id = ?
`

type ConfirmIdentityEmailParams struct {
	EmailConfirmedAt sql.NullTime
	UpdatedAt        time.Time
	ID               string
}

func (q *Queries) ConfirmIdentityEmail(ctx context.Context, arg ConfirmIdentityEmailParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, confirmIdentityEmail, arg.EmailConfirmedAt, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createIdentity = `-- name: CreateIdentity :exec
INSERT INTO identities (
    id, email, name, password_hash, email_confirmed_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateIdentityParams struct {
	ID               string
	Email            string
	Name             string
	PasswordHash     string
	EmailConfirmedAt sql.NullTime
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (q *Queries) CreateIdentity(ctx context.Context, arg CreateIdentityParams) error {
	_, err := q.db.ExecContext(ctx, createIdentity,
		arg.ID,
		arg.Email,
		arg.Name,
		arg.PasswordHash,
		arg.EmailConfirmedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getIdentityByEmail = `-- name: GetIdentityByEmail :one
SELECT id, email, name, password_hash, email_confirmed_at, created_at, updated_at FROM identities WHERE email = ?
`

func (q *Queries) GetIdentityByEmail(ctx context.Context, email string) (Identity, error) {
	row := q.db.QueryRowContext(ctx, getIdentityByEmail, email)
	var i Identity
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.PasswordHash,
		&i.EmailConfirmedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getIdentityByID = `-- name: GetIdentityByID :one
SELECT id, email, name, password_hash, email_confirmed_at, created_at, updated_at FROM identities WHERE id = ?
`

func (q *Queries) GetIdentityByID(ctx context.Context, id string) (Identity, error) {
	row := q.db.QueryRowContext(ctx, getIdentityByID, id)
	var i Identity
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Name,
		&i.PasswordHash,
		&i.EmailConfirmedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
