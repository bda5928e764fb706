package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kiosk/internal/nav"
)

// presentation derives the navbar state from the latest inputs snapshot.
func (m Model) presentation() nav.Presentation {
	return nav.Present(m.inputs, nav.VariantForWidth(m.width, LayoutCompactWidth), m.placeholder)
}

// renderNavbar draws the top bar. Both variants render the same
// Presentation and differ only in how much text fits.
func (m Model) renderNavbar() string {
	p := m.presentation()
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	compact := p.Variant == nav.Compact
	logo := bg.Render("WaysBeans", styles.Logo)
	if compact {
		logo = bg.Render("WB", styles.Logo)
	}

	var parts []string
	if p.ShowLogin {
		label := "[l] Login"
		if compact {
			label = "Login"
		}
		parts = append(parts, bg.Render(label, styles.Button))
	}
	if p.ShowRegister {
		label := "[r] Register"
		if compact {
			label = "Register"
		}
		parts = append(parts, bg.Render(label, styles.Button))
	}
	if p.ShowCart {
		parts = append(parts, m.renderCartAffordance(p, compact, styles, bg))
	}
	if p.ShowProfile {
		parts = append(parts, m.renderProfileAffordance(p, compact, styles, bg))
	}

	inner := m.width - 2
	if inner < 0 {
		inner = 0
	}
	line := bg.Spread(logo, bg.Join(parts, "  "), inner)
	return styles.Navbar.Width(m.width).Render(line)
}

func (m Model) renderCartAffordance(p nav.Presentation, compact bool, styles Styles, bg BgStyle) string {
	label := "[c] Cart"
	if compact {
		label = "Cart"
	}
	out := bg.Render(label, styles.Text)
	if badge := p.Badge(); badge != "" {
		out += bg.Spaces(1) + styles.Badge.Render(" "+badge+" ")
	}
	return out
}

func (m Model) renderProfileAffordance(p nav.Presentation, compact bool, styles Styles, bg BgStyle) string {
	if compact {
		return bg.Render("@"+truncate(imageLabel(p.ProfileImage), 16), styles.AccentText)
	}
	return bg.Render("[p]", styles.FaintText) + bg.Spaces(1) +
		bg.Render(truncateMiddle(p.ProfileImage, 40), styles.AccentText)
}

// renderMenuOverlay right-aligns the profile dropdown under the navbar.
func (m Model) renderMenuOverlay() string {
	menu := m.menu.View(m.theme)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, menu)
}
