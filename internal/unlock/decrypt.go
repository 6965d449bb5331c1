package unlock

import (
	"github.com/PolarWolf314/sitelock/internal/envelope"
	kerrors "github.com/PolarWolf314/sitelock/internal/errors"
	"github.com/PolarWolf314/sitelock/internal/site"
)

// Decrypt opens an encoded envelope and parses the file map inside.
//
// A wrong password, a malformed or tampered envelope, and a payload that
// authenticates but does not parse all return ErrAuthentication. A nil
// cipher uses the compatibility defaults.
func Decrypt(c *envelope.Cipher, encoded, password string) (site.FileMap, error) {
	if c == nil {
		c = envelope.New()
	}

	plaintext, err := c.Decrypt(encoded, password)
	if err != nil {
		return nil, kerrors.ErrAuthentication
	}

	files, err := site.ParsePayload(plaintext)
	if err != nil {
		return nil, kerrors.ErrAuthentication
	}
	if _, ok := files.Index(); !ok {
		return nil, kerrors.ErrAuthentication
	}

	return files, nil
}
