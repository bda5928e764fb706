package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string
	Surface    string
	SurfaceAlt string

	// Selection
	SelectionBg   string
	SelectionText string

	// Borders
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Badge   string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Navbar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Badge)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Background(lipgloss.Color(t.SurfaceAlt)).
			Padding(1, 2),

		Menu: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	// Components
	Navbar        lipgloss.Style
	Footer        lipgloss.Style
	Logo          lipgloss.Style
	Button        lipgloss.Style
	ButtonPrimary lipgloss.Style
	Badge         lipgloss.Style
	Selected      lipgloss.Style
	Dialog        lipgloss.Style
	Menu          lipgloss.Style
}

// WithBackground returns a copy of Styles whose inline styles carry an
// explicit background instead of inheriting the terminal's.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.Logo = s.Logo.Background(bg)
	out.Button = s.Button.Background(bg)
	return out
}

// Theme definitions

const defaultThemeName = "Espresso"

var themes = map[string]Theme{
	"Espresso": espressoTheme(),
	"Latte":    latteTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Espresso", "Latte", "Slate"}

// GetTheme returns a theme by name, falling back to Espresso.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return espressoTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func espressoTheme() Theme {
	// Warm browns around the storefront's brand color #613D2B.
	return Theme{
		Name: "Espresso",

		Background: "#1c130f",
		Surface:    "#2a1d17",
		SurfaceAlt: "#36261e",

		SelectionBg:   "#613d2b",
		SelectionText: "#f5ebe0",

		Border:      "#5a4337",
		BorderFocus: "#c8a27a",

		Text:    "#f5ebe0",
		Muted:   "#bfa898",
		Faint:   "#8c7466",
		Accent:  "#c8a27a",
		Success: "#8fbc8f",
		Warning: "#e6b566",
		Danger:  "#e06c5f",
		Badge:   "#e06c5f",
	}
}

func latteTheme() Theme {
	// Catppuccin Latte: https://github.com/catppuccin/catppuccin
	return Theme{
		Name: "Latte",

		Background: "#eff1f5", // base
		Surface:    "#e6e9ef", // mantle
		SurfaceAlt: "#dce0e8", // crust

		SelectionBg:   "#7287fd", // lavender
		SelectionText: "#eff1f5",

		Border:      "#bcc0cc", // surface1
		BorderFocus: "#1e66f5", // blue

		Text:    "#4c4f69", // text
		Muted:   "#6c6f85", // subtext0
		Faint:   "#9ca0b0", // overlay0
		Accent:  "#1e66f5", // blue
		Success: "#40a02b", // green
		Warning: "#df8e1d", // yellow
		Danger:  "#d20f39", // red
		Badge:   "#fe640b", // peach
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Badge:   "#f43f5e", // rose-500
	}
}
