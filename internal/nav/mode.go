package nav

import (
	"strconv"

	"github.com/five82/kiosk/internal/query"
	"github.com/five82/kiosk/internal/storefront"
)

// DefaultPlaceholderImage is shown when the profile has no image.
const DefaultPlaceholderImage = "/assets/profile-undefined.png"

// Mode is the presentation state of the navigation bar.
type Mode int

const (
	ModeAnonymous Mode = iota
	ModeCustomer
	ModeOther
)

func (m Mode) String() string {
	switch m {
	case ModeCustomer:
		return "authenticated-customer"
	case ModeOther:
		return "authenticated-other"
	default:
		return "anonymous"
	}
}

// Inputs is everything the selector reads. Callers build it explicitly from
// the session flag and the two cached results.
type Inputs struct {
	LoggedIn bool
	Epoch    uint64 // session transitions so far; see session.Flag.Epoch
	Profile  query.Result[storefront.Profile]
	Cart     query.Result[[]storefront.OrderLine]
}

// SelectMode picks the presentation mode. An unresolved profile is treated
// the same as a non-customer role.
func SelectMode(in Inputs) Mode {
	if !in.LoggedIn {
		return ModeAnonymous
	}
	if in.Profile.HasValue && in.Profile.Value.IsCustomer() {
		return ModeCustomer
	}
	return ModeOther
}

// Variant is a layout context for the navigation bar.
type Variant int

const (
	Wide Variant = iota
	Compact
)

func (v Variant) String() string {
	if v == Compact {
		return "compact"
	}
	return "wide"
}

// VariantForWidth returns Compact below threshold columns.
func VariantForWidth(width, threshold int) Variant {
	if width > 0 && width < threshold {
		return Compact
	}
	return Wide
}

// Presentation is the resolved content of the navigation bar.
type Presentation struct {
	Mode    Mode
	Variant Variant

	ShowLogin    bool
	ShowRegister bool

	ShowCart  bool
	HasBadge  bool // false while the cart is absent
	CartCount int

	ShowProfile  bool
	ProfileImage string
}

// Badge returns the cart badge text, or "" when no badge is shown.
func (p Presentation) Badge() string {
	if !p.ShowCart || !p.HasBadge {
		return ""
	}
	return strconv.Itoa(p.CartCount)
}

// Present resolves the navigation bar content for one layout variant. Both
// variants go through this function so their decisions cannot diverge.
func Present(in Inputs, variant Variant, placeholder string) Presentation {
	p := Presentation{Mode: SelectMode(in), Variant: variant}

	switch p.Mode {
	case ModeAnonymous:
		p.ShowLogin = true
		p.ShowRegister = true
		return p
	case ModeCustomer:
		p.ShowCart = true
		if in.Cart.HasValue {
			p.HasBadge = true
			p.CartCount = len(in.Cart.Value)
		}
	}

	p.ShowProfile = true
	p.ProfileImage = ResolveProfileImage(in.Profile, placeholder)
	return p
}

// ResolveProfileImage returns the profile image when one is set, otherwise
// the placeholder.
func ResolveProfileImage(profile query.Result[storefront.Profile], placeholder string) string {
	if placeholder == "" {
		placeholder = DefaultPlaceholderImage
	}
	if profile.HasValue && profile.Value.Image != "" {
		return profile.Value.Image
	}
	return placeholder
}
