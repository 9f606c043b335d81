package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		token, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		token2, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, token, token2, "tokens should be unique")
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("test-token-1")
	fp1b := FingerprintToken("test-token-1")
	fp2 := FingerprintToken("test-token-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}

func TestDeriveToken(t *testing.T) {
	a := DeriveToken("invitation", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	b := DeriveToken("invitation", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")
	c := DeriveToken("invitation", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZW")
	d := DeriveToken("session", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")

	require.Equal(t, a, b, "derivation should be stable for resends")
	require.NotEqual(t, a, c)
	require.NotEqual(t, a, d, "purpose separates token spaces")
	require.Len(t, a, 43)
	require.NotEqual(t, a, FingerprintToken(a))
}
