package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/five82/kiosk/internal/nav"
	"github.com/five82/kiosk/internal/query"
	"github.com/five82/kiosk/internal/session"
	"github.com/five82/kiosk/internal/storefront"
)

// gatedFetcher blocks profile fetches until released and counts calls. When
// cartGate is set the first cart fetch waits on it and then fails the way an
// unauthenticated request does.
type gatedFetcher struct {
	mu           sync.Mutex
	profileGate  chan struct{}
	cartGate     chan struct{}
	profile      storefront.Profile
	cart         []storefront.OrderLine
	cartErr      error
	profileCalls atomic.Int32
	cartCalls    atomic.Int32
}

func (f *gatedFetcher) GetProfile(ctx context.Context) (storefront.Profile, error) {
	f.profileCalls.Add(1)
	f.mu.Lock()
	gate := f.profileGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, nil
}

func (f *gatedFetcher) setProfile(p storefront.Profile) {
	f.mu.Lock()
	f.profile = p
	f.mu.Unlock()
}

func (f *gatedFetcher) GetCart(context.Context) ([]storefront.OrderLine, error) {
	n := f.cartCalls.Add(1)
	f.mu.Lock()
	gate := f.cartGate
	f.mu.Unlock()
	if gate != nil && n == 1 {
		<-gate
		return nil, &storefront.APIError{Path: "/api/order/cart", StatusCode: 401, Message: "unauthorized"}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	return f.cart, nil
}

func (f *gatedFetcher) Login(context.Context, storefront.LoginRequest) (storefront.AuthResponse, error) {
	return storefront.AuthResponse{}, errors.New("not used")
}

func (f *gatedFetcher) Register(context.Context, storefront.RegisterRequest) (storefront.RegisterResponse, error) {
	return storefront.RegisterResponse{}, errors.New("not used")
}

func newTestSources(t *testing.T, f *gatedFetcher) (nav.Sources, *session.Flag, *logrus.Logger) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	flag := &session.Flag{}
	qc := query.NewClient(ctx, logger)
	return nav.NewSources(qc, f, flag), flag, logger
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func login(flag *session.Flag, role string) {
	flag.Login(storefront.AuthResponse{ID: 1, Role: role, Token: "tok"})
}

func TestReconcile_LoginFetchesBothAndLogoutInvalidates(t *testing.T) {
	f := &gatedFetcher{
		profile: storefront.Profile{Role: storefront.RoleCustomer},
		cart:    []storefront.OrderLine{{ID: 1}},
	}
	sources, flag, logger := newTestSources(t, f)
	rule := &nav.Reconciler{RetryBase: time.Millisecond}

	if a := reconcile(time.Now(), rule, sources, logger); a.Any() {
		t.Fatalf("signed-out pass = %+v, want no actions", a)
	}

	login(flag, storefront.RoleCustomer)
	a := reconcile(time.Now(), rule, sources, logger)
	if !a.FetchProfile || !a.FetchCart {
		t.Fatalf("login pass = %+v, want both fetches", a)
	}
	waitFor(t, func() bool {
		return sources.Profile.Get().HasValue && sources.Cart.Get().HasValue
	})
	if got := nav.SelectMode(sources.Inputs()); got != nav.ModeCustomer {
		t.Fatalf("mode = %v, want customer", got)
	}

	if a := reconcile(time.Now(), rule, sources, logger); a.Any() {
		t.Fatalf("steady pass with values = %+v, want no actions", a)
	}

	flag.Logout()
	a = reconcile(time.Now(), rule, sources, logger)
	if !a.InvalidateProfile || !a.InvalidateCart {
		t.Fatalf("logout pass = %+v, want both invalidations", a)
	}
	if sources.Profile.Get().HasValue || sources.Cart.Get().HasValue {
		t.Fatal("cached values survived logout")
	}
}

func TestReconcile_LogoutThenLoginBetweenPassesRefetches(t *testing.T) {
	f := &gatedFetcher{profile: storefront.Profile{Role: "admin"}}
	sources, flag, logger := newTestSources(t, f)
	rule := &nav.Reconciler{}

	reconcile(time.Now(), rule, sources, logger)
	login(flag, "admin")
	reconcile(time.Now(), rule, sources, logger)
	waitFor(t, func() bool { return sources.Profile.Get().HasValue })
	if got := nav.SelectMode(sources.Inputs()); got != nav.ModeOther {
		t.Fatalf("mode = %v, want other", got)
	}

	// A different user signs in before the next pass runs.
	flag.Logout()
	f.setProfile(storefront.Profile{Role: storefront.RoleCustomer})
	login(flag, storefront.RoleCustomer)

	a := reconcile(time.Now(), rule, sources, logger)
	if !a.InvalidateProfile || !a.FetchProfile || !a.InvalidateCart || !a.FetchCart {
		t.Fatalf("pass = %+v, want invalidate and refetch both", a)
	}
	waitFor(t, func() bool { return nav.SelectMode(sources.Inputs()) == nav.ModeCustomer })
	if got := f.profileCalls.Load(); got != 2 {
		t.Fatalf("profile calls = %d, want 2", got)
	}
}

func TestReconcile_LoginRestartsMountCartFetch(t *testing.T) {
	f := &gatedFetcher{
		cartGate: make(chan struct{}),
		profile:  storefront.Profile{Role: storefront.RoleCustomer},
		cart:     []storefront.OrderLine{{ID: 1}, {ID: 2}},
	}
	sources, flag, logger := newTestSources(t, f)
	rule := &nav.Reconciler{RetryBase: time.Hour}

	reconcile(time.Now(), rule, sources, logger)
	sources.Mount()
	waitFor(t, func() bool { return f.cartCalls.Load() == 1 })

	login(flag, storefront.RoleCustomer)
	reconcile(time.Now(), rule, sources, logger)
	waitFor(t, func() bool { return f.cartCalls.Load() == 2 })

	// The signed-out fetch now fails; its result belongs to the old session.
	close(f.cartGate)
	waitFor(t, func() bool {
		return sources.Cart.Get().HasValue && sources.Profile.Get().HasValue
	})
	time.Sleep(20 * time.Millisecond)

	c := sources.Cart.Get()
	if !c.HasValue || c.Failures != 0 || c.Err != nil {
		t.Fatalf("cart = %+v, want fetched without failures", c)
	}
	if p := nav.Present(sources.Inputs(), nav.Wide, ""); !p.HasBadge || p.Badge() != "2" {
		t.Fatalf("presentation = %+v, want badge 2", p)
	}
}

func TestReconcile_LogoutDuringProfileFetchRendersAnonymous(t *testing.T) {
	f := &gatedFetcher{
		profileGate: make(chan struct{}),
		profile:     storefront.Profile{Role: storefront.RoleCustomer},
	}
	sources, flag, logger := newTestSources(t, f)
	rule := &nav.Reconciler{}

	reconcile(time.Now(), rule, sources, logger)
	login(flag, storefront.RoleCustomer)
	reconcile(time.Now(), rule, sources, logger)
	waitFor(t, func() bool { return f.profileCalls.Load() == 1 })

	flag.Logout()
	if got := nav.SelectMode(sources.Inputs()); got != nav.ModeAnonymous {
		t.Fatalf("mode after logout = %v, want anonymous", got)
	}
	reconcile(time.Now(), rule, sources, logger)

	close(f.profileGate)
	time.Sleep(20 * time.Millisecond)

	if sources.Profile.Get().HasValue {
		t.Fatal("late profile result was stored after logout")
	}
	if got := nav.SelectMode(sources.Inputs()); got != nav.ModeAnonymous {
		t.Fatalf("mode after late result = %v, want anonymous", got)
	}
}

func TestReconcile_FailedCartRetriesWithBackoff(t *testing.T) {
	f := &gatedFetcher{
		profile: storefront.Profile{Role: storefront.RoleCustomer},
		cartErr: errors.New("boom"),
	}
	sources, flag, logger := newTestSources(t, f)
	rule := &nav.Reconciler{RetryBase: time.Hour}

	login(flag, storefront.RoleCustomer)
	reconcile(time.Now(), rule, sources, logger)
	waitFor(t, func() bool {
		c := sources.Cart.Get()
		return !c.Fetching && c.Failures == 1
	})

	now := time.Now()
	if a := reconcile(now, rule, sources, logger); a.FetchCart {
		t.Fatal("cart refetched before backoff elapsed")
	}
	if a := reconcile(now.Add(time.Hour+time.Second), rule, sources, logger); !a.FetchCart {
		t.Fatal("cart not refetched after backoff elapsed")
	}
	if p := nav.Present(sources.Inputs(), nav.Wide, ""); p.HasBadge {
		t.Fatalf("presentation = %+v, failed cart must not show a badge", p)
	}
}

func TestStartReconciler_KickRunsPass(t *testing.T) {
	f := &gatedFetcher{profile: storefront.Profile{Role: "admin"}}
	sources, flag, logger := newTestSources(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := StartReconciler(ctx, sources, time.Hour, time.Millisecond, logger)
	flag.OnChange(func(bool) { r.Kick() })

	login(flag, "admin")
	waitFor(t, func() bool { return sources.Profile.Get().HasValue })
	if got := nav.SelectMode(sources.Inputs()); got != nav.ModeOther {
		t.Fatalf("mode = %v, want other", got)
	}
}

func TestReconciler_KicksCollapse(t *testing.T) {
	r := &Reconciler{kick: make(chan struct{}, 1)}
	r.Kick()
	r.Kick()
	r.Kick()
	if got := len(r.kick); got != 1 {
		t.Fatalf("pending kicks = %d, want 1", got)
	}
}

func TestSources_MountFetchesCartOnlyWhenSignedOut(t *testing.T) {
	f := &gatedFetcher{}
	sources, _, _ := newTestSources(t, f)

	sources.Mount()
	waitFor(t, func() bool { return sources.Cart.Get().State() != query.NeverFetched })
	if f.profileCalls.Load() != 0 {
		t.Fatalf("profile fetched while signed out (%d calls)", f.profileCalls.Load())
	}
	if f.cartCalls.Load() != 1 {
		t.Fatalf("cart calls = %d, want 1", f.cartCalls.Load())
	}
}
