package jwtx

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
)

// AlgorithmEdDSA is the only algorithm session keys are generated with.
const AlgorithmEdDSA = "EdDSA"

// SigningKeyRecord is a signing key as persisted. It mirrors the store's
// row so this package does not import it.
type SigningKeyRecord struct {
	ID                  string
	Kid                 string
	Algorithm           string
	PrivateKeyEncrypted []byte
	CreatedAt           time.Time
	RetiredAt           *time.Time
	ExpiresAt           time.Time
}

// KeyStore is the persistence NewPersistentKeyManager needs.
type KeyStore interface {
	// ListSigningKeys returns every key still valid for verification at now,
	// newest first, retired keys included.
	ListSigningKeys(ctx context.Context, now time.Time) ([]SigningKeyRecord, error)

	// CreateSigningKey stores a new key with its private half sealed.
	CreateSigningKey(ctx context.Context, key SigningKeyRecord) error
}

// PersistentKeyManagerOptions configures NewPersistentKeyManager.
type PersistentKeyManagerOptions struct {
	Store KeyStore

	// Issuer is the iss claim written and enforced on every token.
	Issuer string

	// Audience values enforced during verification. Empty means "don't care".
	Audience []string

	// KeyTTL is how long a key signs new tokens. Defaults to 30 days.
	KeyTTL time.Duration

	// GracePeriod is how long a key keeps verifying after it stops signing.
	// It must outlive the session TTL. Defaults to 7 days.
	GracePeriod time.Duration

	// RefreshInterval bounds how often an unknown kid reloads keys from
	// Store. Defaults to 30 seconds.
	RefreshInterval time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewPersistentKeyManager loads the signing keys in Store into the KeySet
// and signs with the newest one still inside its KeyTTL. When none is, a new
// Ed25519 key is generated, sealed with the master key and stored. Every
// process sharing the store and master key therefore verifies the tokens of
// the others, and sessions survive restarts.
func NewPersistentKeyManager(ctx context.Context, opts PersistentKeyManagerOptions) (*KeyManager, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("jwtx: Store is required for persistent key manager")
	}
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}
	if opts.KeyTTL <= 0 {
		opts.KeyTTL = 30 * 24 * time.Hour
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = 7 * 24 * time.Hour
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	now := opts.Now().UTC()

	records, err := opts.Store.ListSigningKeys(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to load keys from database: %w", err)
	}

	keyset := NewKeySet()
	var primary Signer
	for _, rec := range records {
		signer, err := openSigner(rec)
		if err != nil {
			return nil, err
		}
		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add key %s to keyset: %w", rec.Kid, err)
		}
		if primary == nil && rec.RetiredAt == nil && rec.CreatedAt.Add(opts.KeyTTL).After(now) {
			primary = signer
		}
	}

	if primary == nil {
		primary, err = createSigner(ctx, opts, now)
		if err != nil {
			return nil, err
		}
		if err := keyset.AddSigner(primary); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add new key to keyset: %w", err)
		}
	}

	keyset.SetRefresh(opts.RefreshInterval, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return loadNewKeys(ctx, opts, keyset)
	})

	return &KeyManager{
		Signer:   primary,
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
	}, nil
}

// loadNewKeys adds keys stored since keyset was built, such as a key another
// process rotated in.
func loadNewKeys(ctx context.Context, opts PersistentKeyManagerOptions, keyset *KeySet) error {
	records, err := opts.Store.ListSigningKeys(ctx, opts.Now().UTC())
	if err != nil {
		return fmt.Errorf("jwtx: failed to reload keys: %w", err)
	}
	for _, rec := range records {
		if keyset.Has(rec.Kid) {
			continue
		}
		signer, err := openSigner(rec)
		if err != nil {
			return err
		}
		if err := keyset.AddSigner(signer); err != nil {
			return err
		}
	}
	return nil
}

func openSigner(rec SigningKeyRecord) (Signer, error) {
	if rec.Algorithm != AlgorithmEdDSA {
		return nil, fmt.Errorf("jwtx: key %s: unsupported algorithm %q", rec.Kid, rec.Algorithm)
	}
	pemData, err := cryptox.DecryptPrivateKey(rec.PrivateKeyEncrypted)
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to decrypt key %s: %w", rec.Kid, err)
	}
	signer, err := NewSignerEdDSA(rec.Kid, pemData)
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to create signer for key %s: %w", rec.Kid, err)
	}
	return signer, nil
}

func createSigner(ctx context.Context, opts PersistentKeyManagerOptions, now time.Time) (Signer, error) {
	kid, err := newKeyID()
	if err != nil {
		return nil, err
	}
	pemData, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to generate new key: %w", err)
	}
	signer, err := NewSignerEdDSA(kid, pemData)
	if err != nil {
		return nil, err
	}

	sealed, err := cryptox.EncryptPrivateKey(pemData)
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to encrypt new key: %w", err)
	}

	rec := SigningKeyRecord{
		ID:                  idx.NewAt(now).String(),
		Kid:                 kid,
		Algorithm:           AlgorithmEdDSA,
		PrivateKeyEncrypted: sealed,
		CreatedAt:           now,
		ExpiresAt:           now.Add(opts.KeyTTL + opts.GracePeriod),
	}
	if err := opts.Store.CreateSigningKey(ctx, rec); err != nil {
		return nil, fmt.Errorf("jwtx: failed to store new key: %w", err)
	}
	return signer, nil
}
