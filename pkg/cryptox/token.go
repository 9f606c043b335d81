package cryptox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// Token size constants (in bytes before encoding).
const (
	// TokenSize128 provides 128 bits of entropy (22 chars base64url).
	TokenSize128 = 16
	// TokenSize256 provides 256 bits of entropy (43 chars base64url).
	TokenSize256 = 32
)

// GenerateToken creates a cryptographically secure random token of the given
// byte length, returned base64url-encoded without padding.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// DeriveToken returns a 256-bit token bound to purpose and subject, keyed by
// the service pepper:
//
//	base64url(HMAC-SHA256(pepper, purpose + ":" + subject))
//
// The same inputs always yield the same token, so a link can be re-sent
// without keeping the raw token around. Only its fingerprint is persisted.
func DeriveToken(purpose, subject string) string {
	mac := hmac.New(sha256.New, []byte(GetPepper()))
	mac.Write([]byte(purpose))
	mac.Write([]byte{':'})
	mac.Write([]byte(subject))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token.
// Stores index tokens by fingerprint so a database leak does not hand out
// usable links.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
