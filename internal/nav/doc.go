// Package nav decides what the storefront navigation bar shows.
//
// Selection is pure: callers pass the session flag and the cached profile
// and cart results in Inputs, and get back a Mode, a Presentation or a set
// of fetch Actions. Sources is the only stateful piece; it snapshots the flag
// and both queries into Inputs and applies Actions back to the queries.
//
// Modes:
//
//	Anonymous   session flag false; login and register entry points
//	Customer    signed in with role "user"; cart badge + profile menu
//	Other       signed in, any other role or profile not yet known; profile menu
//
// The wide and compact layouts both call Present, so the mode and profile
// image decisions are made once.
//
// Reconciler replaces "check on every render" with an explicit rule run on
// session transitions and on the reconcile tick, with exponential backoff
// for values whose last fetch failed.
package nav
