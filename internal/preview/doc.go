// Package preview serves a generated artifact over local HTTP so the unlock
// flow can be tried in a real browser before publishing.
//
// The artifact is read from disk on every request, so re-running encrypt
// while the server is up is picked up on the next reload.
package preview
