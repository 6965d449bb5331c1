// Package envelope implements the password envelope shared by the encrypt
// command and the unlock script.
//
// # Layout
//
// An envelope is the base64 encoding of
//
//	salt (32 bytes) ‖ iv (12 bytes) ‖ AES-256-GCM ciphertext and tag
//
// The key is PBKDF2-HMAC-SHA256 over the password and salt with Iterations
// rounds. Iterations, SaltLength and IVLength are a compatibility contract:
// the page generator writes them into the unlock script as literals, and an
// artifact can only be opened with the values it was built with.
//
// # Keys
//
// Derived keys are scoped to one direction. DeriveSealKey returns a key
// that can only encrypt, DeriveOpenKey one that can only decrypt, and the
// key bytes never leave this package.
//
// # Errors
//
// Decode reports ErrMalformedEnvelope for bad input. Cipher.Decrypt folds
// that, a wrong password, and any tampering into ErrAuthentication.
package envelope
