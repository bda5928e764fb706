// Package ui implements the kiosk terminal interface with Bubble Tea.
//
// The top bar renders one of three navigation modes chosen by
// nav.Present from the session flag and the cached profile and cart. Below
// it sits a small router (home, cart, profile pages), the profile dropdown
// and the login and register dialogs, whose visibility is owned by
// nav.Modals. The model never fetches on render: it re-reads the cache on a
// UI tick and whenever the query client reports a settled entry.
package ui
