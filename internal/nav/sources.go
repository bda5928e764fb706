package nav

import (
	"context"

	"github.com/five82/kiosk/internal/query"
	"github.com/five82/kiosk/internal/storefront"
)

// SessionFlag is the read-only view of the session the selector needs.
type SessionFlag interface {
	IsLogin() bool
	Epoch() uint64
}

// Sources binds the session flag to the profile and cart queries.
type Sources struct {
	Session SessionFlag
	Profile *query.Query[storefront.Profile]
	Cart    *query.Query[[]storefront.OrderLine]
}

// NewSources registers the profile and cart queries on qc. The profile query
// only runs while the session is signed in; the cart query is always
// enabled so it can be attempted at mount.
func NewSources(qc *query.Client, fetcher storefront.Fetcher, flag SessionFlag) Sources {
	return Sources{
		Session: flag,
		Profile: query.New(qc, query.KeyProfile, func(ctx context.Context) (storefront.Profile, error) {
			return fetcher.GetProfile(ctx)
		}, query.Options{Enabled: flag.IsLogin}),
		Cart: query.New(qc, query.KeyCart, func(ctx context.Context) ([]storefront.OrderLine, error) {
			return fetcher.GetCart(ctx)
		}, query.Options{}),
	}
}

// Inputs snapshots the session flag and both cached results.
func (s Sources) Inputs() Inputs {
	return Inputs{
		LoggedIn: s.Session.IsLogin(),
		Epoch:    s.Session.Epoch(),
		Profile:  s.Profile.Get(),
		Cart:     s.Cart.Get(),
	}
}

// Mount performs the initial fetches: the cart unconditionally, the profile
// when signed in.
func (s Sources) Mount() {
	s.Cart.Ensure()
	s.Profile.Ensure()
}

// Apply carries out the actions of a reconciliation pass. Invalidations run
// before fetches, so a fetch started under an earlier session (the mount-time
// cart fetch, say) is dropped rather than coalesced with.
func (s Sources) Apply(a Actions) {
	if a.InvalidateProfile {
		s.Profile.Invalidate()
	}
	if a.InvalidateCart {
		s.Cart.Invalidate()
	}
	if a.FetchProfile {
		s.Profile.Refetch()
	}
	if a.FetchCart {
		s.Cart.Refetch()
	}
}
