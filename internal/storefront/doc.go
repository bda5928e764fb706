// Package storefront is the HTTP client for the coffee-bean storefront API.
//
// Every response is wrapped in an envelope:
//
//	{"status": "success", "data": ...}
//	{"status": "error", "message": "..."}
//
// The client unwraps data into the typed payloads in types.go and turns
// error envelopes and non-2xx statuses into *APIError. A 401 matches
// ErrUnauthorized via errors.Is.
//
// Authenticated calls (GetProfile, GetCart) attach the bearer token from the
// configured TokenSource; session.Flag implements it. Each request carries a
// fresh X-Request-ID so client logs can be correlated with server logs.
//
// The Fetcher interface is what the rest of kiosk depends on, so tests can
// swap in fakes without an HTTP server.
package storefront
