package nav

// Modals holds the visibility of the login and register dialogs. The two
// flags are independent: opening one leaves the other as it was.
type Modals struct {
	LoginOpen    bool
	RegisterOpen bool
}

// OpenLogin shows the login dialog.
func (m *Modals) OpenLogin() { m.LoginOpen = true }

// OpenRegister shows the register dialog.
func (m *Modals) OpenRegister() { m.RegisterOpen = true }

// CloseLogin hides the login dialog.
func (m *Modals) CloseLogin() { m.LoginOpen = false }

// CloseRegister hides the register dialog.
func (m *Modals) CloseRegister() { m.RegisterOpen = false }

// SwitchToRegister closes login and opens register in one step.
func (m *Modals) SwitchToRegister() {
	m.LoginOpen = false
	m.RegisterOpen = true
}

// SwitchToLogin closes register and opens login in one step.
func (m *Modals) SwitchToLogin() {
	m.RegisterOpen = false
	m.LoginOpen = true
}

// AnyOpen reports whether a dialog is visible.
func (m Modals) AnyOpen() bool {
	return m.LoginOpen || m.RegisterOpen
}
