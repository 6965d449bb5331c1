package envelope

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"testing"

	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	"github.com/stretchr/testify/require"
)

// fastCipher keeps tests quick where the property does not depend on the
// iteration count.
func fastCipher() *Cipher {
	return &Cipher{Iterations: 1000, Rand: rand.Reader}
}

func TestRoundTripDefaultIterations(t *testing.T) {
	payload := []byte(`{"index.html":{"type":"text","content":"<h1>hi</h1>"}}`)

	env, err := Encrypt(payload, "secret")
	require.NoError(t, err)

	got, err := Decrypt(env, "secret")
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestRoundTrip(t *testing.T) {
	c := fastCipher()

	tests := []struct {
		name     string
		payload  []byte
		password string
	}{
		{"empty payload", []byte{}, "pw"},
		{"empty password", []byte("data"), ""},
		{"unicode", []byte("héllo wörld ✓"), "pässwörd"},
		{"large", bytes.Repeat([]byte("0123456789abcdef"), 64*1024), "long password with spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := c.Encrypt(tt.payload, tt.password)
			require.NoError(t, err)

			got, err := c.Decrypt(env, tt.password)
			require.NoError(t, err)
			require.True(t, bytes.Equal(tt.payload, got))
		})
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	c := fastCipher()
	payload := []byte("same payload")

	first, err := c.Encrypt(payload, "pw")
	require.NoError(t, err)
	second, err := c.Encrypt(payload, "pw")
	require.NoError(t, err)

	require.NotEqual(t, first, second)

	a, err := Decode(first)
	require.NoError(t, err)
	b, err := Decode(second)
	require.NoError(t, err)
	require.NotEqual(t, a.Salt, b.Salt)
	require.NotEqual(t, a.IV, b.IV)
}

func TestWrongPassword(t *testing.T) {
	c := fastCipher()

	env, err := c.Encrypt([]byte("payload"), "right")
	require.NoError(t, err)

	for _, pw := range []string{"wrong", "Right", "right ", ""} {
		_, err := c.Decrypt(env, pw)
		require.ErrorIs(t, err, kerrors.ErrAuthentication, "password %q", pw)
	}
}

func TestTamperSensitivity(t *testing.T) {
	c := fastCipher()

	env, err := c.Encrypt([]byte("some site payload"), "pw")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(env)
	require.NoError(t, err)

	regions := []struct {
		name  string
		start int
		end   int
	}{
		{"salt", 0, SaltLength},
		{"iv", SaltLength, SaltLength + IVLength},
		{"ciphertext", SaltLength + IVLength, len(raw)},
	}

	for _, region := range regions {
		t.Run(region.name, func(t *testing.T) {
			// First, last and middle byte of the region, every bit.
			offsets := []int{region.start, (region.start + region.end) / 2, region.end - 1}
			for _, off := range offsets {
				for bit := 0; bit < 8; bit++ {
					tampered := bytes.Clone(raw)
					tampered[off] ^= 1 << bit

					_, err := c.Decrypt(base64.StdEncoding.EncodeToString(tampered), "pw")
					require.ErrorIs(t, err, kerrors.ErrAuthentication, "offset %d bit %d", off, bit)
				}
			}
		})
	}
}

func TestDecryptMalformedIsAuthenticationError(t *testing.T) {
	c := fastCipher()

	for _, env := range []string{
		"",
		"not base64 !!",
		base64.StdEncoding.EncodeToString(make([]byte, SaltLength+IVLength-1)),
		base64.StdEncoding.EncodeToString(make([]byte, SaltLength+IVLength)),
	} {
		_, err := c.Decrypt(env, "pw")
		require.ErrorIs(t, err, kerrors.ErrAuthentication)
		require.NotErrorIs(t, err, kerrors.ErrMalformedEnvelope)
	}
}

func TestCipherDefaults(t *testing.T) {
	c := &Cipher{}
	require.Equal(t, Iterations, c.IterationCount())
	require.Equal(t, rand.Reader, c.random())
}

func TestEncryptRandFailure(t *testing.T) {
	c := &Cipher{Iterations: 1000, Rand: bytes.NewReader(make([]byte, SaltLength))}

	_, err := c.Encrypt([]byte("x"), "pw")
	require.Error(t, err)
}
