package jwtx_test

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type memKeyStore struct {
	mu   sync.Mutex
	keys []jwtx.SigningKeyRecord
}

func (m *memKeyStore) ListSigningKeys(_ context.Context, now time.Time) ([]jwtx.SigningKeyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []jwtx.SigningKeyRecord
	for _, k := range m.keys {
		if k.ExpiresAt.After(now) {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memKeyStore) CreateSigningKey(_ context.Context, key jwtx.SigningKeyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, key)
	return nil
}

func (m *memKeyStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keys)
}

func useMasterKey(t *testing.T) {
	t.Helper()
	cryptox.SetMasterKeyPath(filepath.Join(t.TempDir(), "master.key"))
	t.Cleanup(func() { cryptox.SetMasterKeyPath("master.key") })
}

func persistentManager(t *testing.T, keys jwtx.KeyStore, now time.Time) *jwtx.KeyManager {
	t.Helper()
	km, err := jwtx.NewPersistentKeyManager(context.Background(), jwtx.PersistentKeyManagerOptions{
		Store:       keys,
		Issuer:      "roster",
		KeyTTL:      24 * time.Hour,
		GracePeriod: time.Hour,
		Now:         func() time.Time { return now },
	})
	require.NoError(t, err)
	return km
}

func signFor(t *testing.T, km *jwtx.KeyManager, subject string) string {
	t.Helper()
	token, err := km.Signer.Sign(jwtx.NewSessionClaims(subject, "a@example.com", "", time.Hour, "roster", nil, time.Now()))
	require.NoError(t, err)
	return token
}

func TestPersistentKeyManagerReusesStoredKey(t *testing.T) {
	useMasterKey(t)
	keys := &memKeyStore{}
	now := time.Now()

	first := persistentManager(t, keys, now)
	require.True(t, first.IsReady())
	require.Equal(t, 1, keys.len())
	require.NotContains(t, string(keys.keys[0].PrivateKeyEncrypted), "PRIVATE KEY")

	// A restart, or a second process on the same store.
	second := persistentManager(t, keys, now.Add(time.Minute))
	require.Equal(t, 1, keys.len())
	require.Equal(t, first.Signer.KID(), second.Signer.KID())

	got, err := second.Verifier.Verify(signFor(t, first, "u1"))
	require.NoError(t, err)
	require.Equal(t, "u1", got.Subject)

	got, err = first.Verifier.Verify(signFor(t, second, "u2"))
	require.NoError(t, err)
	require.Equal(t, "u2", got.Subject)
}

func TestPersistentKeyManagerRotatesAgedKey(t *testing.T) {
	useMasterKey(t)
	keys := &memKeyStore{}
	now := time.Now()

	old := persistentManager(t, keys, now)
	oldToken := signFor(t, old, "u1")

	// Past the key TTL but inside the grace period.
	rotated := persistentManager(t, keys, now.Add(24*time.Hour+time.Minute))
	require.Equal(t, 2, keys.len())
	require.NotEqual(t, old.Signer.KID(), rotated.Signer.KID())
	require.Len(t, rotated.KeySet.PublicJWKS().Keys, 2)

	_, err := rotated.Verifier.Verify(oldToken)
	require.NoError(t, err, "the retired key still verifies during the grace period")

	// The process started before the rotation learns the new key on demand.
	_, err = old.Verifier.Verify(signFor(t, rotated, "u2"))
	require.NoError(t, err)
	require.Len(t, old.KeySet.PublicJWKS().Keys, 2)
}

func TestPersistentKeyManagerDropsExpiredKeys(t *testing.T) {
	useMasterKey(t)
	keys := &memKeyStore{}
	now := time.Now()

	old := persistentManager(t, keys, now)

	later := persistentManager(t, keys, now.Add(26*time.Hour))
	require.Len(t, later.KeySet.PublicJWKS().Keys, 1)
	require.False(t, later.KeySet.Has(old.Signer.KID()))
}

func TestPersistentKeyManagerSkipsRetiredKeyForSigning(t *testing.T) {
	useMasterKey(t)
	keys := &memKeyStore{}
	now := time.Now()

	first := persistentManager(t, keys, now)
	retired := now.Add(time.Minute)
	keys.keys[0].RetiredAt = &retired

	next := persistentManager(t, keys, now.Add(2*time.Minute))
	require.NotEqual(t, first.Signer.KID(), next.Signer.KID())
	require.True(t, next.KeySet.Has(first.Signer.KID()))
}

func TestPersistentKeyManagerNeedsMatchingMasterKey(t *testing.T) {
	useMasterKey(t)
	keys := &memKeyStore{}
	persistentManager(t, keys, time.Now())

	cryptox.SetMasterKeyPath(filepath.Join(t.TempDir(), "other.key"))
	_, err := jwtx.NewPersistentKeyManager(context.Background(), jwtx.PersistentKeyManagerOptions{
		Store:  keys,
		Issuer: "roster",
	})
	require.Error(t, err)
}

type failingKeyStore struct{ memKeyStore }

func (f *failingKeyStore) ListSigningKeys(context.Context, time.Time) ([]jwtx.SigningKeyRecord, error) {
	return nil, errors.New("database is down")
}

func TestPersistentKeyManagerOptions(t *testing.T) {
	useMasterKey(t)

	_, err := jwtx.NewPersistentKeyManager(context.Background(), jwtx.PersistentKeyManagerOptions{Issuer: "roster"})
	require.Error(t, err)

	_, err = jwtx.NewPersistentKeyManager(context.Background(), jwtx.PersistentKeyManagerOptions{Store: &memKeyStore{}})
	require.Error(t, err)

	_, err = jwtx.NewPersistentKeyManager(context.Background(), jwtx.PersistentKeyManagerOptions{
		Store:  &failingKeyStore{},
		Issuer: "roster",
	})
	require.ErrorContains(t, err, "database is down")
}
