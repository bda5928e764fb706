package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Navbar actions
	OpenLogin    key.Binding
	OpenRegister key.Binding
	OpenCart     key.Binding
	ProfileMenu  key.Binding
	ActivityLog  key.Binding
	Home         key.Binding
	Back         key.Binding

	// Menu navigation
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding

	// Dialogs
	NextField        key.Binding
	PrevField        key.Binding
	Submit           key.Binding
	SwitchToRegister key.Binding
	SwitchToLogin    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		// Navbar actions
		OpenLogin: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Login"),
		),
		OpenRegister: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Register"),
		),
		OpenCart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cart"),
		),
		ProfileMenu: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Profile menu"),
		),
		ActivityLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),
		Home: key.NewBinding(
			key.WithKeys("H", "home"),
			key.WithHelp("H", "Home"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "backspace"),
			key.WithHelp("b", "Back"),
		),

		// Menu navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select"),
		),

		// Dialogs
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
		SwitchToRegister: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Register instead"),
		),
		SwitchToLogin: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Login instead"),
		),
	}
}
