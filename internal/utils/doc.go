// Package utils provides shared utility functions for the sitelock CLI.
//
// # Filesystem Utilities
//
//   - WriteFileAtomic: temp file plus rename, used for build artifacts
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - FormatBytes: renders sizes with binary units
//   - Pluralize: "1 file" / "2 files"
//
// # Terminal Utilities
//
//   - ReadPassphrase: prompts for a password without echo
//   - IsTerminal: checks whether stdin is a terminal
package utils
