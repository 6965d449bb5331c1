// Package errors provides typed error values for sitelock.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Build errors: the encrypt command cannot run (ErrPasswordMissing,
//     ErrInputDirMissing, ErrUnreadableFile, ErrMissingIndex)
//   - Crypto errors: an envelope cannot be opened (ErrAuthentication,
//     ErrMalformedEnvelope)
//   - Artifact errors: a generated page is not usable (ErrEnvelopeNotFound)
//
// Two structured types carry extra context and unwrap to the sentinels:
//
//	var pre *errors.PreconditionError
//	if errors.As(err, &pre) {
//	    fmt.Fprintln(os.Stderr, pre.Name)
//	}
//
// # Authentication failures
//
// Everything that goes wrong while opening an envelope is reported as
// ErrAuthentication. A wrong password and a corrupted deployment look the
// same to the caller, so a page never tells an attacker which one happened.
package errors
