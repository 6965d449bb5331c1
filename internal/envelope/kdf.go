package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Compatibility constants baked into every generated artifact.
const (
	Iterations = 600000 // OWASP 2023 guidance for PBKDF2-HMAC-SHA256
	SaltLength = 32
	IVLength   = 12
	KeyLength  = 32
)

// SealKey encrypts. It cannot decrypt.
type SealKey struct {
	aead cipher.AEAD
}

// OpenKey decrypts. It cannot encrypt.
type OpenKey struct {
	aead cipher.AEAD
}

// DeriveSealKey derives an encryption-only key from password and salt.
func DeriveSealKey(password string, salt []byte, iterations int) (SealKey, error) {
	aead, err := deriveAEAD(password, salt, iterations)
	if err != nil {
		return SealKey{}, err
	}
	return SealKey{aead: aead}, nil
}

// DeriveOpenKey derives a decryption-only key from password and salt.
func DeriveOpenKey(password string, salt []byte, iterations int) (OpenKey, error) {
	aead, err := deriveAEAD(password, salt, iterations)
	if err != nil {
		return OpenKey{}, err
	}
	return OpenKey{aead: aead}, nil
}

// Seal encrypts plaintext under iv. The returned slice carries the tag.
func (k SealKey) Seal(iv, plaintext []byte) ([]byte, error) {
	if k.aead == nil {
		return nil, fmt.Errorf("seal key not initialized")
	}
	if len(iv) != IVLength {
		return nil, fmt.Errorf("invalid iv length: expected %d bytes, got %d bytes", IVLength, len(iv))
	}
	return k.aead.Seal(nil, iv, plaintext, nil), nil
}

// Open authenticates and decrypts ciphertext under iv.
func (k OpenKey) Open(iv, ciphertext []byte) ([]byte, error) {
	if k.aead == nil {
		return nil, fmt.Errorf("open key not initialized")
	}
	if len(iv) != IVLength {
		return nil, fmt.Errorf("invalid iv length: expected %d bytes, got %d bytes", IVLength, len(iv))
	}
	return k.aead.Open(nil, iv, ciphertext, nil)
}

func deriveAEAD(password string, salt []byte, iterations int) (cipher.AEAD, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("invalid iteration count %d", iterations)
	}
	if len(salt) != SaltLength {
		return nil, fmt.Errorf("invalid salt length: expected %d bytes, got %d bytes", SaltLength, len(salt))
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, KeyLength, sha256.New)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}

// SessionStorageKey names the session storage entry that caches the last
// password that opened the page.
const SessionStorageKey = "sitelock_session"
