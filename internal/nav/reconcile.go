package nav

import (
	"time"

	"github.com/five82/kiosk/internal/query"
)

const (
	// DefaultRetryBase is the wait before retrying a failed fetch.
	DefaultRetryBase = 2 * time.Second

	maxBackoff = 30 * time.Second
)

// Actions are the fetch side effects requested by a reconciliation pass.
type Actions struct {
	FetchProfile      bool
	FetchCart         bool
	InvalidateProfile bool
	InvalidateCart    bool
}

// Any reports whether any action is requested.
func (a Actions) Any() bool {
	return a.FetchProfile || a.FetchCart || a.InvalidateProfile || a.InvalidateCart
}

// Reconciler decides when the profile and cart should be fetched. It reacts
// to session transitions and retries absent values with exponential backoff.
// It is not safe for concurrent use.
type Reconciler struct {
	RetryBase time.Duration

	seen         bool
	prevLoggedIn bool
	prevEpoch    uint64
}

// Evaluate compares in with the previous evaluation and returns the actions
// to apply.
//
//   - any session change: invalidate profile and cart
//   - session change that ends signed in: also fetch profile and cart
//   - signed in: fetch whichever value is absent, idle and past its backoff
//
// A session change is a flip of LoggedIn or a new Epoch, so a logout and a
// login that both land between two passes still count.
func (r *Reconciler) Evaluate(now time.Time, in Inputs) Actions {
	var a Actions

	edge := r.seen && (in.LoggedIn != r.prevLoggedIn || in.Epoch != r.prevEpoch)
	r.seen = true
	r.prevLoggedIn = in.LoggedIn
	r.prevEpoch = in.Epoch

	if edge {
		a.InvalidateProfile = true
		a.InvalidateCart = true
	}
	if !in.LoggedIn {
		return a
	}
	if edge {
		a.FetchProfile = true
		a.FetchCart = true
		return a
	}

	a.FetchProfile = r.due(now, in.Profile.HasValue, in.Profile.Fetching, in.Profile.Failures, in.Profile.UpdatedAt)
	a.FetchCart = r.due(now, in.Cart.HasValue, in.Cart.Fetching, in.Cart.Failures, in.Cart.UpdatedAt)
	return a
}

func (r *Reconciler) due(now time.Time, hasValue, fetching bool, failures int, updated time.Time) bool {
	if hasValue || fetching {
		return false
	}
	if failures == 0 {
		return true
	}
	base := r.RetryBase
	if base <= 0 {
		base = DefaultRetryBase
	}
	return now.Sub(updated) >= calculateBackoff(failures-1, base)
}

// NextRetry returns when an absent result becomes due again, or the zero
// time when it is due now or never retried.
func NextRetry[T any](res query.Result[T], base time.Duration) time.Time {
	if res.HasValue || res.Failures == 0 {
		return time.Time{}
	}
	if base <= 0 {
		base = DefaultRetryBase
	}
	return res.UpdatedAt.Add(calculateBackoff(res.Failures-1, base))
}

// calculateBackoff doubles interval per failure, capped at maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
