package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func useMasterKey(t *testing.T, file string) {
	t.Helper()
	SetMasterKeyPath(file)
	t.Cleanup(func() { SetMasterKeyPath("master.key") })
}

func TestEncryptPrivateKeyRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "keys", "master.key")
	useMasterKey(t, file)

	pemData, err := GenerateEd25519Key()
	require.NoError(t, err)

	sealed, err := EncryptPrivateKey(pemData)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "PRIVATE KEY")

	opened, err := DecryptPrivateKey(sealed)
	require.NoError(t, err)
	require.Equal(t, pemData, opened)

	info, err := os.Stat(file)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEncryptPrivateKeyUsesFreshNonce(t *testing.T) {
	useMasterKey(t, filepath.Join(t.TempDir(), "master.key"))

	a, err := EncryptPrivateKey([]byte("same"))
	require.NoError(t, err)
	b, err := EncryptPrivateKey([]byte("same"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestMasterKeySurvivesReload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "master.key")
	useMasterKey(t, file)

	sealed, err := EncryptPrivateKey([]byte("secret"))
	require.NoError(t, err)

	// A new process reads the same file.
	SetMasterKeyPath(file)
	opened, err := DecryptPrivateKey(sealed)
	require.NoError(t, err)
	require.Equal(t, "secret", string(opened))
}

func TestDecryptPrivateKeyRejectsOtherMasterKey(t *testing.T) {
	dir := t.TempDir()
	useMasterKey(t, filepath.Join(dir, "a.key"))

	sealed, err := EncryptPrivateKey([]byte("secret"))
	require.NoError(t, err)

	SetMasterKeyPath(filepath.Join(dir, "b.key"))
	_, err = DecryptPrivateKey(sealed)
	require.Error(t, err)
}

func TestDecryptPrivateKeyRejectsTampering(t *testing.T) {
	useMasterKey(t, filepath.Join(t.TempDir(), "master.key"))

	sealed, err := EncryptPrivateKey([]byte("secret"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = DecryptPrivateKey(sealed)
	require.Error(t, err)

	_, err = DecryptPrivateKey([]byte("x"))
	require.Error(t, err)
}

func TestMasterKeyFileMustNotBeEmpty(t *testing.T) {
	file := filepath.Join(t.TempDir(), "master.key")
	require.NoError(t, os.WriteFile(file, nil, 0600))
	useMasterKey(t, file)

	_, err := EncryptPrivateKey([]byte("secret"))
	require.Error(t, err)
}
