// Package query memoizes remote fetches under named keys for the kiosk UI.
//
// # Overview
//
// A Client is the process-wide pool of cache entries. Any number of Query
// handles may point at the same key; they share one entry, one in-flight
// fetch and one result. This is the layer the navigation bar reads its
// profile and cart from.
//
//	Producers (fetch goroutines):        Consumers (UI / reconciler):
//	┌─────────────────────┐              ┌──────────────────────┐
//	│ q.Refetch()         │              │ q.Get() → Result[T]  │
//	│   begin (mutex)     │              │                      │
//	│   go fetch(ctx)     │              │                      │
//	│   settle (mutex) ───┼── notify ───→│ Subscribe callbacks  │
//	└─────────────────────┘              └──────────────────────┘
//
// # Results
//
// Get never blocks and never returns an error. Instead Result carries
// enough to tell the three cases apart:
//
//	State() == NeverFetched   no value, no error
//	State() == Failed         no value, last fetch failed (Err, Failures)
//	State() == Fetched        value present (Err may hold a later failure)
//
// A failed fetch keeps any previously fetched value.
//
// # Coalescing
//
// At most one fetch per key runs at a time. Refetch while a fetch is in
// flight is a no-op that returns false, so rapid re-renders never turn into
// a burst of network calls.
//
// # Enablement
//
// Options.Enabled is consulted before each fetch starts. While it reports
// false, Refetch and Ensure do nothing and the entry stays absent. It is not
// consulted again once a fetch is running; use Invalidate to abandon one.
//
// # Invalidation
//
// Invalidate clears the entry, cancels the in-flight fetch's context and
// bumps the entry generation. A fetch that completes after invalidation is
// discarded instead of repopulating the cache.
package query
