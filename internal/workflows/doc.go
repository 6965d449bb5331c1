// Package workflows provides high-level orchestration for sitelock commands.
//
// Workflows coordinate the site, envelope, page, unlock and audit packages
// to implement complete user-facing features. Each workflow handles a
// single command's business logic, independent of CLI concerns like flag
// parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Merges flags over sitelock.toml
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Validating preconditions
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Encrypt: bundles a site directory into one password-protected page
//   - Decrypt: opens an artifact with a password and writes its contents
//   - Inspect: reports an artifact's envelope layout without a password
//   - Publish: uploads an artifact to S3-compatible hosting
//   - History: reads and filters the audit log
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Encrypt(ctx, opts)
//	var pre *kerrors.PreconditionError
//	if errors.As(err, &pre) {
//	    // Name the missing precondition
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Publish passes it to the S3 client. Encrypt and Decrypt check it before
// key derivation.
package workflows
