package envelope

import (
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
)

// Cipher seals and opens envelopes with a fixed iteration count.
type Cipher struct {
	Iterations int
	Rand       io.Reader
}

// New returns a Cipher using the compatibility iteration count and
// crypto/rand.
func New() *Cipher {
	return &Cipher{Iterations: Iterations, Rand: rand.Reader}
}

var defaultCipher = New()

// Encrypt seals plaintext with the default Cipher.
func Encrypt(plaintext []byte, password string) (string, error) {
	return defaultCipher.Encrypt(plaintext, password)
}

// Decrypt opens an envelope with the default Cipher.
func Decrypt(envelope, password string) ([]byte, error) {
	return defaultCipher.Decrypt(envelope, password)
}

// Encrypt generates a fresh salt and iv, derives a seal key and returns the
// encoded envelope. Two calls never return the same envelope.
func (c *Cipher) Encrypt(plaintext []byte, password string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(c.random(), salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	iv := make([]byte, IVLength)
	if _, err := io.ReadFull(c.random(), iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	key, err := DeriveSealKey(password, salt, c.IterationCount())
	if err != nil {
		return "", fmt.Errorf("deriving key: %w", err)
	}

	ciphertext, err := key.Seal(iv, plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypting payload: %w", err)
	}

	return Encode(salt, iv, ciphertext), nil
}

// Decrypt decodes the envelope, derives an open key from the embedded salt
// and authenticates the ciphertext. Every failure is ErrAuthentication.
func (c *Cipher) Decrypt(envelope, password string) ([]byte, error) {
	parts, err := Decode(envelope)
	if err != nil {
		return nil, kerrors.ErrAuthentication
	}

	key, err := DeriveOpenKey(password, parts.Salt, c.IterationCount())
	if err != nil {
		return nil, kerrors.ErrAuthentication
	}

	plaintext, err := key.Open(parts.IV, parts.Ciphertext)
	if err != nil {
		return nil, kerrors.ErrAuthentication
	}
	return plaintext, nil
}

// IterationCount is the PBKDF2 iteration count the cipher derives keys
// with. A zero Iterations field means the compatibility default.
func (c *Cipher) IterationCount() int {
	if c.Iterations == 0 {
		return Iterations
	}
	return c.Iterations
}

func (c *Cipher) random() io.Reader {
	if c.Rand == nil {
		return rand.Reader
	}
	return c.Rand
}
