package domain

import "time"

// SigningKey is a session signing key kept across restarts. The private key
// is stored encrypted under the master key.
type SigningKey struct {
	ID                  string
	Kid                 string // key id published in the JWKS
	Algorithm           string
	PrivateKeyEncrypted []byte // AES-256-GCM sealed PKCS8 PEM
	CreatedAt           time.Time
	RetiredAt           *time.Time // set when the key stops signing early
	ExpiresAt           time.Time  // verification ends, the row can go
}
