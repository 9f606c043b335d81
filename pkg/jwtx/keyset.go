package jwtx

import (
	"crypto/ed25519"
	"errors"
	"sync"
	"time"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds the public verification keys in memory. It is shared by the
// verifier and the JWKS handler.
type KeySet struct {
	mu  sync.RWMutex
	jks JWKS
	pub map[string]ed25519.PublicKey

	refreshMu    sync.Mutex
	refresh      func() error
	refreshEvery time.Duration
	refreshedAt  time.Time
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]ed25519.PublicKey)}
}

// AddSigner registers a Signer's public JWK into the KeySet.
func (k *KeySet) AddSigner(s Signer) error {
	return k.AddJWK(s.PublicJWK())
}

// AddJWK adds a JWK to the KeySet.
func (k *KeySet) AddJWK(j JWK) error {
	key, err := parseJWKToKey(j)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.pub[j.Kid]; ok {
		return nil
	}
	k.pub[j.Kid] = key
	k.jks.Keys = append(k.jks.Keys, j)
	return nil
}

// SetRefresh installs fn to load keys added by other processes. Get calls it
// on an unknown kid, at most once per interval.
func (k *KeySet) SetRefresh(interval time.Duration, fn func() error) {
	k.refreshMu.Lock()
	defer k.refreshMu.Unlock()
	k.refresh = fn
	k.refreshEvery = interval
}

// Has reports whether kid is loaded.
func (k *KeySet) Has(kid string) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.pub[kid]
	return ok
}

// Get returns the public key for the given kid.
func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	if pk, ok := k.lookup(kid); ok {
		return pk, nil
	}
	if !k.tryRefresh() {
		return nil, ErrNoKey
	}
	if pk, ok := k.lookup(kid); ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

func (k *KeySet) lookup(kid string) (ed25519.PublicKey, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	pk, ok := k.pub[kid]
	return pk, ok
}

func (k *KeySet) tryRefresh() bool {
	k.refreshMu.Lock()
	defer k.refreshMu.Unlock()
	if k.refresh == nil {
		return false
	}
	if !k.refreshedAt.IsZero() && time.Since(k.refreshedAt) < k.refreshEvery {
		return false
	}
	k.refreshedAt = time.Now()
	return k.refresh() == nil
}

// PublicJWKS returns a snapshot of the KeySet's JWKS for HTTP serving.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := JWKS{Keys: make([]JWK, len(k.jks.Keys))}
	copy(out.Keys, k.jks.Keys)
	return out
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}
