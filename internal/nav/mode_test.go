package nav

import (
	"errors"
	"testing"

	"github.com/five82/kiosk/internal/query"
	"github.com/five82/kiosk/internal/storefront"
)

func profile(role, image string) query.Result[storefront.Profile] {
	return query.FetchedResult(storefront.Profile{ID: 1, Role: role, Image: image})
}

func cart(n int) query.Result[[]storefront.OrderLine] {
	return query.FetchedResult(make([]storefront.OrderLine, n))
}

func TestSelectMode_SignedOutIsAlwaysAnonymous(t *testing.T) {
	cases := []Inputs{
		{},
		{Profile: profile("user", "")},
		{Profile: profile("admin", "https://x/y.png"), Cart: cart(3)},
		{Cart: query.Result[[]storefront.OrderLine]{Err: errors.New("down")}},
	}
	for i, in := range cases {
		if got := SelectMode(in); got != ModeAnonymous {
			t.Fatalf("case %d: SelectMode = %v, want anonymous", i, got)
		}
		p := Present(in, Wide, "")
		if !p.ShowLogin || !p.ShowRegister || p.ShowCart || p.ShowProfile {
			t.Fatalf("case %d: Present = %#v, want only login/register", i, p)
		}
	}
}

func TestSelectMode_Roles(t *testing.T) {
	cases := []struct {
		name     string
		in       Inputs
		want     Mode
		wantCart bool
	}{
		{"customer", Inputs{LoggedIn: true, Profile: profile("user", "")}, ModeCustomer, true},
		{"admin", Inputs{LoggedIn: true, Profile: profile("admin", "")}, ModeOther, false},
		{"empty_role", Inputs{LoggedIn: true, Profile: profile("", "")}, ModeOther, false},
		{"profile_unresolved", Inputs{LoggedIn: true}, ModeOther, false},
		{"profile_failed", Inputs{LoggedIn: true, Profile: query.Result[storefront.Profile]{Err: errors.New("x")}}, ModeOther, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectMode(tc.in); got != tc.want {
				t.Fatalf("SelectMode = %v, want %v", got, tc.want)
			}
			p := Present(tc.in, Wide, "")
			if p.ShowCart != tc.wantCart {
				t.Fatalf("ShowCart = %v, want %v", p.ShowCart, tc.wantCart)
			}
			if !p.ShowProfile || p.ShowLogin || p.ShowRegister {
				t.Fatalf("Present = %#v, want profile only affordances", p)
			}
		})
	}
}

func TestPresent_CartBadge(t *testing.T) {
	base := Inputs{LoggedIn: true, Profile: profile("user", "")}

	in := base
	in.Cart = cart(4)
	if got := Present(in, Wide, "").Badge(); got != "4" {
		t.Fatalf("Badge = %q, want 4", got)
	}

	in.Cart = cart(0)
	p := Present(in, Wide, "")
	if !p.HasBadge || p.Badge() != "0" {
		t.Fatalf("empty cart badge = %q (HasBadge=%v), want 0", p.Badge(), p.HasBadge)
	}

	// A failed cart fetch shows no badge at all, not zero.
	in.Cart = query.Result[[]storefront.OrderLine]{Err: errors.New("network"), Failures: 1}
	p = Present(in, Wide, "")
	if !p.ShowCart || p.HasBadge || p.Badge() != "" {
		t.Fatalf("failed cart = %#v, want cart affordance without badge", p)
	}

	in.Cart = query.Result[[]storefront.OrderLine]{}
	if got := Present(in, Compact, "").Badge(); got != "" {
		t.Fatalf("unfetched cart Badge = %q, want empty", got)
	}
}

func TestResolveProfileImage_VariantsAgree(t *testing.T) {
	const placeholder = "/assets/placeholder.png"
	cases := []struct {
		name string
		in   query.Result[storefront.Profile]
		want string
	}{
		{"empty_image", profile("user", ""), placeholder},
		{"uri", profile("user", "https://x/y.png"), "https://x/y.png"},
		{"absent", query.Result[storefront.Profile]{}, placeholder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := Inputs{LoggedIn: true, Profile: tc.in}
			wide := Present(in, Wide, placeholder)
			compact := Present(in, Compact, placeholder)
			if wide.ProfileImage != tc.want || compact.ProfileImage != tc.want {
				t.Fatalf("wide=%q compact=%q, want %q", wide.ProfileImage, compact.ProfileImage, tc.want)
			}
		})
	}

	if got := ResolveProfileImage(query.Result[storefront.Profile]{}, ""); got != DefaultPlaceholderImage {
		t.Fatalf("default placeholder = %q, want %q", got, DefaultPlaceholderImage)
	}
}

func TestVariantForWidth(t *testing.T) {
	if VariantForWidth(80, 100) != Compact {
		t.Fatal("80 cols should be compact")
	}
	if VariantForWidth(100, 100) != Wide {
		t.Fatal("100 cols should be wide")
	}
	if VariantForWidth(0, 100) != Wide {
		t.Fatal("unknown width should be wide")
	}
}

func TestModals_IndependentAndSwitch(t *testing.T) {
	var m Modals
	m.OpenLogin()
	m.OpenRegister()
	if !m.LoginOpen || !m.RegisterOpen {
		t.Fatalf("opening one should not close the other: %#v", m)
	}

	m = Modals{}
	m.OpenLogin()
	m.SwitchToRegister()
	if m.LoginOpen || !m.RegisterOpen {
		t.Fatalf("SwitchToRegister = %#v, want register only", m)
	}
	m.SwitchToLogin()
	if !m.LoginOpen || m.RegisterOpen {
		t.Fatalf("SwitchToLogin = %#v, want login only", m)
	}
	m.CloseLogin()
	if m.AnyOpen() {
		t.Fatalf("AnyOpen = true after closing, %#v", m)
	}
}
