// Bindings for queries/signing_keys.sql.

package gen

import (
	"context"
	"database/sql"
	"time"
)

const createSigningKey = `-- name: CreateSigningKey :exec
INSERT INTO signing_keys (
    id, kid, algorithm, private_key_encrypted, created_at, retired_at, expires_at
) VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateSigningKeyParams struct {
	ID                  string
	Kid                 string
	Algorithm           string
	PrivateKeyEncrypted []byte
	CreatedAt           time.Time
	RetiredAt           sql.NullTime
	ExpiresAt           time.Time
}

func (q *Queries) CreateSigningKey(ctx context.Context, arg CreateSigningKeyParams) error {
	_, err := q.db.ExecContext(ctx, createSigningKey,
		arg.ID,
		arg.Kid,
		arg.Algorithm,
		arg.PrivateKeyEncrypted,
		arg.CreatedAt,
		arg.RetiredAt,
		arg.ExpiresAt,
	)
	return err
}

const deleteExpiredSigningKeys = `-- name: DeleteExpiredSigningKeys :execrows
DELETE FROM signing_keys WHERE expires_at <= ?
`

func (q *Queries) DeleteExpiredSigningKeys(ctx context.Context, expiresAt time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpiredSigningKeys, expiresAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listSigningKeys = `-- name: ListSigningKeys :many
SELECT id, kid, algorithm, private_key_encrypted, created_at, retired_at, expires_at FROM signing_keys
WHERE expires_at > ?
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListSigningKeys(ctx context.Context, expiresAt time.Time) ([]SigningKey, error) {
	rows, err := q.db.QueryContext(ctx, listSigningKeys, expiresAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []SigningKey{}
	for rows.Next() {
		var i SigningKey
		if err := rows.Scan(
			&i.ID,
			&i.Kid,
			&i.Algorithm,
			&i.PrivateKeyEncrypted,
			&i.CreatedAt,
			&i.RetiredAt,
			&i.ExpiresAt,
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
