// Package security provides the optional at-rest encryption used for
// exported database snapshots. A cipher is selected once at startup:
// a secretbox-backed variant when a key is configured, otherwise a
// passthrough that stores snapshots in the clear.
package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

var (
	// ErrDecryptFailed indicates the ciphertext was tampered with or the
	// wrong key was supplied
	ErrDecryptFailed = errors.New("snapshot decryption failed")
)

// SnapshotCipher seals and opens snapshot payloads
type SnapshotCipher interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(ciphertext []byte) ([]byte, error)

	// Enabled reports whether payloads are actually encrypted
	Enabled() bool
}

// Passthrough stores payloads unencrypted
type Passthrough struct{}

// NewPassthrough creates the disabled cipher variant
func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

func (p *Passthrough) Seal(plaintext []byte) ([]byte, error)  { return plaintext, nil }
func (p *Passthrough) Open(ciphertext []byte) ([]byte, error) { return ciphertext, nil }
func (p *Passthrough) Enabled() bool                          { return false }

// SecretboxCipher encrypts payloads with NaCl secretbox
// (XSalsa20-Poly1305) under a fixed 32-byte key.
type SecretboxCipher struct {
	key [32]byte
}

// NewSecretboxCipher creates a cipher from a hex-encoded 32-byte key
func NewSecretboxCipher(hexKey string) (*SecretboxCipher, error) {
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("backup key must be hex encoded: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("backup key must be 32 bytes, got %d", len(raw))
	}

	c := &SecretboxCipher{}
	copy(c.key[:], raw)
	return c, nil
}

// Seal encrypts the payload, prepending the random nonce
func (c *SecretboxCipher) Seal(plaintext []byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, &c.key), nil
}

// Open decrypts a payload produced by Seal
func (c *SecretboxCipher) Open(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 24 {
		return nil, ErrDecryptFailed
	}

	var nonce [24]byte
	copy(nonce[:], ciphertext[:24])

	plaintext, ok := secretbox.Open(nil, ciphertext[24:], &nonce, &c.key)
	if !ok {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}

func (c *SecretboxCipher) Enabled() bool {
	return true
}
