package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

var (
	// The master key seals signing keys at rest. Like the pepper it is read
	// from a file, or generated and written there on first use.
	masterKeyMu   sync.Mutex
	masterKey     []byte
	masterKeyFile = "master.key"
)

// SetMasterKeyPath points the master key at file and drops any cached key.
func SetMasterKeyPath(file string) {
	masterKeyMu.Lock()
	defer masterKeyMu.Unlock()

	masterKeyFile = file
	masterKey = nil
}

func getMasterKey() ([]byte, error) {
	masterKeyMu.Lock()
	defer masterKeyMu.Unlock()

	if masterKey != nil {
		return masterKey, nil
	}

	material, err := loadOrGenerateMasterKey(masterKeyFile)
	if err != nil {
		return nil, fmt.Errorf("cryptox: master key: %w", err)
	}

	// Any file content works; SHA-256 turns it into an AES-256 key.
	sum := sha256.Sum256(material)
	masterKey = sum[:]
	return masterKey, nil
}

func loadOrGenerateMasterKey(file string) ([]byte, error) {
	file = filepath.Clean(file)
	raw, err := os.ReadFile(file)
	if err == nil {
		if len(raw) == 0 {
			return nil, fmt.Errorf("%s is empty", file)
		}
		return raw, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return nil, err
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	generated := []byte(base64.RawURLEncoding.EncodeToString(buf))
	if err := os.WriteFile(file, generated, 0600); err != nil {
		return nil, err
	}
	return generated, nil
}

func masterGCM() (cipher.AEAD, error) {
	key, err := getMasterKey()
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptox: create GCM: %w", err)
	}
	return gcm, nil
}

// EncryptPrivateKey seals a PEM private key with AES-256-GCM under the
// master key. Output layout: nonce || ciphertext || tag.
func EncryptPrivateKey(pemData []byte) ([]byte, error) {
	gcm, err := masterGCM()
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("cryptox: generate nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, pemData, nil), nil
}

// DecryptPrivateKey opens data produced by EncryptPrivateKey. It fails on a
// different master key or any tampering.
func DecryptPrivateKey(sealed []byte) ([]byte, error) {
	gcm, err := masterGCM()
	if err != nil {
		return nil, err
	}

	n := gcm.NonceSize()
	if len(sealed) < n {
		return nil, fmt.Errorf("cryptox: ciphertext too short")
	}
	plain, err := gcm.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("cryptox: decryption failed: %w", err)
	}
	return plain, nil
}
