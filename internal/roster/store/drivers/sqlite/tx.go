package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		tx: tx,
		q:  gen.New(tx),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the outer DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op: the connection is already held by the transaction.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

// Nested transactions are not supported.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Invitations() store.Invitations     { return &invitationsRepo{q: t.q} }
func (t *txStore) Memberships() store.Memberships     { return &membershipsRepo{q: t.q} }
func (t *txStore) Organizations() store.Organizations { return &organizationsRepo{q: t.q} }
func (t *txStore) Identities() store.Identities       { return &identitiesRepo{q: t.q} }
func (t *txStore) SigningKeys() store.SigningKeys     { return &signingKeysRepo{q: t.q} }

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }
