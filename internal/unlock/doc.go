// Package unlock holds the run-time half of sitelock: opening an envelope,
// turning the recovered file map back into a document, and the password
// form state machine.
//
// The browser script embedded by package page does the same work with
// WebCrypto. This package is the reference model of that script; browser
// globals are passed in explicitly as a Page so the logic runs in tests
// and in the decrypt command without a browser.
//
// # States
//
//	Idle ──submit──▶ Decrypting ──ok──▶ Unlocked
//	  ▲                   │
//	  └──auto-attempt fails┤
//	                      └──manual attempt fails──▶ Failed ──submit──▶ Decrypting
//
// A failed automatic attempt (cached session password) returns to Idle
// without showing the error banner. A failed manual attempt shows it.
package unlock
