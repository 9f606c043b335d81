package jwtx

import (
	"fmt"

	"github.com/aussiebroadwan/roster/pkg/cryptox"
)

// KeyManager owns the signing key for session tokens and the KeySet used to
// verify them.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	// Issuer is the iss claim written and enforced on every token.
	Issuer string

	// Audience values enforced during verification. Empty means "don't care".
	Audience []string
}

// NewEphemeralKeyManager generates a fresh Ed25519 key held in memory only.
// Tokens it signs do not survive a restart; tests use it, servers use
// NewPersistentKeyManager.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	kid, err := newKeyID()
	if err != nil {
		return nil, err
	}

	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}

	signer, err := NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, err
	}

	keyset := NewKeySet()
	if err := keyset.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: failed to add signer to keyset: %w", err)
	}

	return &KeyManager{
		Signer:   signer,
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
	}, nil
}

func newKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to generate key ID: %w", err)
	}
	return "roster-" + token, nil
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}
