// Package page renders the deployable HTML artifact and reads existing
// artifacts back.
//
// The artifact is a single document with the envelope in an inert
// <script type="application/octet-stream"> element, the unlock script with
// the compatibility constants written as literals, and a password form.
package page
