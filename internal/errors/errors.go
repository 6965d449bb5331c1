package errors

import (
	"errors"
	"fmt"
)

// Build errors indicate the encrypt command cannot produce an artifact.
var (
	// ErrPasswordMissing indicates no site password was supplied.
	ErrPasswordMissing = errors.New("site password not set")

	// ErrInputDirMissing indicates the built site directory does not exist.
	ErrInputDirMissing = errors.New("input directory not found")

	// ErrUnreadableFile indicates a file in the site could not be read.
	ErrUnreadableFile = errors.New("unreadable file")

	// ErrMissingIndex indicates the collected site has no index.html.
	ErrMissingIndex = errors.New("site has no index.html")
)

// Cryptographic errors indicate failures while opening an envelope.
var (
	// ErrAuthentication covers a wrong password, a tampered envelope, a
	// malformed envelope and an unparseable payload. Callers must not try to
	// tell these apart.
	ErrAuthentication = errors.New("incorrect password")

	// ErrMalformedEnvelope indicates the envelope is not valid base64 or is
	// shorter than salt plus iv.
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// Artifact errors indicate issues with a generated HTML artifact.
var (
	// ErrEnvelopeNotFound indicates the artifact carries no encrypted-data element.
	ErrEnvelopeNotFound = errors.New("no encrypted payload found in artifact")

	// ErrAttemptInFlight indicates an unlock attempt is already running.
	ErrAttemptInFlight = errors.New("unlock attempt already in progress")
)

// Config errors.
var (
	// ErrConfigExists indicates a config file is already present.
	ErrConfigExists = errors.New("config file already exists")

	// ErrAuditDisabled indicates history was requested without an audit log configured.
	ErrAuditDisabled = errors.New("audit log not configured")

	// ErrInvalidDateFormat indicates a date filter could not be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// Publish errors.
var (
	// ErrBucketMissing indicates publish was run without a bucket.
	ErrBucketMissing = errors.New("bucket not set")
)

// PreconditionError is returned when the encrypt command is missing a
// required input. Name identifies the missing precondition.
type PreconditionError struct {
	Name string
	Hint string
	Err  error
}

func (e *PreconditionError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err, e.Name, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Name)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// UnreadableFileError is returned when collection hits a file it cannot read.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrUnreadableFile, e.Path, e.Err)
}

// Is reports ErrUnreadableFile so callers can use errors.Is.
func (e *UnreadableFileError) Is(target error) bool {
	return target == ErrUnreadableFile
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}
