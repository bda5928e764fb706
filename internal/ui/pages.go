package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/kiosk/internal/nav"
	"github.com/five82/kiosk/internal/query"
	"github.com/five82/kiosk/internal/storefront"
)

// renderContent renders the page for the current route.
func (m Model) renderContent() string {
	switch m.router.Path() {
	case routeHome:
		return m.renderHome()
	case routeCart:
		return m.renderCart()
	case routeProfile:
		return m.renderProfile()
	case routeLogs:
		return m.renderLogs()
	default:
		return m.theme.Styles().MutedText.Render("Page not found: " + m.router.Path())
	}
}

func (m Model) renderHome() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("WaysBeans"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Best quality coffee beans, roasted to order."))
	b.WriteString("\n\n")

	if m.inputs.LoggedIn && m.session != nil {
		if u := m.session.User(); u.Name != "" {
			b.WriteString(styles.Text.Render("Welcome back, " + u.Name + "."))
			b.WriteString("\n")
		}
	}

	switch nav.SelectMode(m.inputs) {
	case nav.ModeAnonymous:
		b.WriteString(styles.Text.Render("Press l to log in or r to create an account."))
	case nav.ModeCustomer:
		b.WriteString(styles.Text.Render("Press c to open your cart or p for your account."))
	default:
		b.WriteString(styles.Text.Render("Press p for your account."))
	}
	return b.String()
}

func (m Model) renderCart() string {
	styles := m.theme.Styles()
	if nav.SelectMode(m.inputs) != nav.ModeCustomer {
		return styles.MutedText.Render("The cart is available to customers only.")
	}

	cart := m.inputs.Cart
	switch {
	case cart.HasValue:
	case cart.Fetching || cart.State() == query.NeverFetched:
		return styles.MutedText.Render("Loading cart...")
	default:
		return styles.WarningText.Render("Cart unavailable. " + m.retryText(nav.NextRetry(cart, m.retryBase)))
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("My Cart"))
	b.WriteString("\n\n")
	if len(cart.Value) == 0 {
		b.WriteString(styles.MutedText.Render("Your cart is empty."))
		return b.String()
	}

	for _, line := range cart.Value {
		name := padRight(truncate(line.Product.Name, 28), 28)
		b.WriteString(styles.Text.Render(name))
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  x%-3d  ", line.OrderQty)))
		b.WriteString(styles.AccentText.Render(formatRupiah(line.Subtotal())))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Text.Bold(true).Render("Total  "))
	b.WriteString(styles.AccentText.Render(formatRupiah(storefront.CartTotal(cart.Value))))
	return b.String()
}

func (m Model) renderProfile() string {
	styles := m.theme.Styles()
	if !m.inputs.LoggedIn {
		return styles.MutedText.Render("Log in to see your profile.")
	}
	profile := m.inputs.Profile
	if !profile.HasValue {
		if profile.State() == query.Failed && !profile.Fetching {
			return styles.WarningText.Render("Profile unavailable. " + m.retryText(nav.NextRetry(profile, m.retryBase)))
		}
		return styles.MutedText.Render("Loading profile...")
	}

	p := profile.Value
	rows := [][2]string{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Role", p.Role},
		{"Image", nav.ResolveProfileImage(profile, m.placeholder)},
	}
	if p.Phone != "" {
		rows = append(rows, [2]string{"Phone", p.Phone})
	}
	if p.Address != "" {
		rows = append(rows, [2]string{"Address", p.Address})
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("My Profile"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(styles.MutedText.Render(padRight(row[0], 10)))
		b.WriteString(styles.Text.Render(row[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// retryText describes when the reconciler will try again.
func (m Model) retryText(next time.Time) string {
	wait := next.Sub(m.now)
	if next.IsZero() || wait <= 0 {
		return "Retrying now."
	}
	secs := (wait + time.Second - 1) / time.Second
	return fmt.Sprintf("Retrying in %ds.", secs)
}

// renderLogs shows the newest log lines that fit the content area.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Activity"))
	b.WriteString("  ")
	b.WriteString(styles.FaintText.Render(truncateMiddle(m.logFile, 60)))
	b.WriteString("\n\n")

	if len(m.logLines) == 0 {
		b.WriteString(styles.MutedText.Render("No log entries yet."))
		return b.String()
	}

	// navbar, footer, padding and the title take eight rows
	visible := m.height - 8
	if visible < 1 {
		visible = 1
	}
	lines := m.logLines
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	width := m.width - 4
	for _, line := range lines {
		style := styles.MutedText
		switch {
		case strings.Contains(line, "level=error"), strings.Contains(line, "level=fatal"):
			style = styles.DangerText
		case strings.Contains(line, "level=warn"):
			style = styles.WarningText
		}
		b.WriteString(style.Render(truncate(line, width)))
		b.WriteString("\n")
	}
	return b.String()
}
