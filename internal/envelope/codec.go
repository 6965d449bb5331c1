package envelope

import (
	"encoding/base64"
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
)

// Parts is a decoded envelope.
type Parts struct {
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// Encode concatenates salt, iv and ciphertext and base64-encodes the result.
func Encode(salt, iv, ciphertext []byte) string {
	combined := make([]byte, 0, len(salt)+len(iv)+len(ciphertext))
	combined = append(combined, salt...)
	combined = append(combined, iv...)
	combined = append(combined, ciphertext...)
	return base64.StdEncoding.EncodeToString(combined)
}

// Decode splits an envelope at the fixed offsets. Surrounding whitespace is
// ignored.
func Decode(s string) (Parts, error) {
	combined, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return Parts{}, fmt.Errorf("%w: %v", kerrors.ErrMalformedEnvelope, err)
	}

	header := SaltLength + IVLength
	if len(combined) < header {
		return Parts{}, fmt.Errorf("%w: %d bytes, need at least %d", kerrors.ErrMalformedEnvelope, len(combined), header)
	}

	return Parts{
		Salt:       combined[:SaltLength],
		IV:         combined[SaltLength:header],
		Ciphertext: combined[header:],
	}, nil
}
