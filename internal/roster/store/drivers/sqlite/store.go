package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// DSN builds a modernc connection string for a database file. Every pooled
// connection gets WAL, foreign keys and a busy timeout, and write
// transactions start with BEGIN IMMEDIATE so concurrent writers queue on the
// database lock instead of failing at commit.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	q.Set("_time_format", "sqlite")
	return "file:" + path + "?" + q.Encode()
}

// NewStore opens the database at path. Call ApplyMigrations before use.
func NewStore(path string) (*Store, error) {
	dsn := DSN(path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(8)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Safe to call after commit.
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Invitations() store.Invitations     { return &invitationsRepo{q: s.q} }
func (s *Store) Memberships() store.Memberships     { return &membershipsRepo{q: s.q} }
func (s *Store) Organizations() store.Organizations { return &organizationsRepo{q: s.q} }
func (s *Store) Identities() store.Identities       { return &identitiesRepo{q: s.q} }
func (s *Store) SigningKeys() store.SigningKeys     { return &signingKeysRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return store.ErrAlreadyExists
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapTimeNull(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapInvitation(row gen.Invitation) domain.Invitation {
	return domain.Invitation{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		Email:          row.Email,
		Name:           row.Name,
		Role:           domain.Role(row.Role),
		TokenHash:      row.TokenHash,
		InvitedBy:      row.InvitedBy,
		ExpiresAt:      row.ExpiresAt.UTC(),
		UsedAt:         mapNullTimePtr(row.UsedAt),
		UsedBy:         mapNullString(row.UsedBy),
		Locale:         row.Locale,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}

func mapMembership(row gen.Membership) domain.Membership {
	return domain.Membership{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		IdentityID:     row.IdentityID,
		Email:          row.Email,
		IdentityEmail:  row.IdentityEmail,
		Name:           row.Name,
		Role:           domain.Role(row.Role),
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}

func mapOrganization(row gen.Organization) domain.Organization {
	return domain.Organization{
		ID:        row.ID,
		Name:      row.Name,
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

func mapIdentity(row gen.Identity) domain.Credential {
	return domain.Credential{
		ID:             row.ID,
		Email:          row.Email,
		Name:           row.Name,
		PasswordHash:   row.PasswordHash,
		EmailConfirmed: mapNullTimePtr(row.EmailConfirmedAt),
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}

func mapSigningKey(row gen.SigningKey) domain.SigningKey {
	return domain.SigningKey{
		ID:                  row.ID,
		Kid:                 row.Kid,
		Algorithm:           row.Algorithm,
		PrivateKeyEncrypted: row.PrivateKeyEncrypted,
		CreatedAt:           row.CreatedAt.UTC(),
		RetiredAt:           mapNullTimePtr(row.RetiredAt),
		ExpiresAt:           row.ExpiresAt.UTC(),
	}
}
