package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kiosk/internal/storefront"
)

// Modal is implemented by the login and register dialogs.
type Modal interface {
	HandleKey(msg tea.KeyMsg, keys keyMap) (dialogEvent, tea.Cmd)
	View(theme Theme, width, height int) string
}

// dialogEvent tells the model what a key press inside a dialog asked for.
type dialogEvent int

const (
	dialogNone dialogEvent = iota
	dialogClose
	dialogSwitch
	dialogSubmit
)

type dialogKind int

const (
	dialogLogin dialogKind = iota
	dialogRegister
)

// authDialog is the form behind both the login and the register dialog.
type authDialog struct {
	kind   dialogKind
	labels []string
	fields []textinput.Model
	focus  int
	err    string
	busy   bool
}

func newLoginDialog() authDialog {
	return newAuthDialog(dialogLogin, []string{"Email", "Password"})
}

func newRegisterDialog() authDialog {
	return newAuthDialog(dialogRegister, []string{"Full name", "Email", "Password"})
}

func newAuthDialog(kind dialogKind, labels []string) authDialog {
	fields := make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = label
		ti.CharLimit = 128
		ti.Width = DialogWidth - 4
		if label == "Password" {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		fields[i] = ti
	}
	return authDialog{kind: kind, labels: labels, fields: fields}
}

// Reset clears the form and focuses the first empty field. Email is
// prefilled when given.
func (d *authDialog) Reset(email string) tea.Cmd {
	d.err = ""
	d.busy = false
	for i := range d.fields {
		d.fields[i].Reset()
		if d.labels[i] == "Email" && email != "" {
			d.fields[i].SetValue(email)
		}
	}
	target := 0
	for i := range d.fields {
		if d.fields[i].Value() == "" {
			target = i
			break
		}
	}
	return d.focusField(target)
}

func (d *authDialog) focusField(i int) tea.Cmd {
	if len(d.fields) == 0 {
		return nil
	}
	i = (i + len(d.fields)) % len(d.fields)
	for j := range d.fields {
		d.fields[j].Blur()
	}
	d.focus = i
	return d.fields[i].Focus()
}

func (d *authDialog) value(label string) string {
	for i, l := range d.labels {
		if l == label {
			return d.fields[i].Value()
		}
	}
	return ""
}

// LoginRequest builds the request body from the form.
func (d *authDialog) LoginRequest() storefront.LoginRequest {
	return storefront.LoginRequest{
		Email:    strings.TrimSpace(d.value("Email")),
		Password: d.value("Password"),
	}
}

// RegisterRequest builds the request body from the form.
func (d *authDialog) RegisterRequest() storefront.RegisterRequest {
	return storefront.RegisterRequest{
		Name:     strings.TrimSpace(d.value("Full name")),
		Email:    strings.TrimSpace(d.value("Email")),
		Password: d.value("Password"),
	}
}

// Fail records a submit error and unlocks the form.
func (d *authDialog) Fail(msg string) {
	d.busy = false
	d.err = msg
}

// HandleKey implements Modal.
func (d *authDialog) HandleKey(msg tea.KeyMsg, keys keyMap) (dialogEvent, tea.Cmd) {
	if key.Matches(msg, keys.Escape) {
		return dialogClose, nil
	}
	if d.busy {
		return dialogNone, nil
	}

	switch {
	case d.kind == dialogLogin && key.Matches(msg, keys.SwitchToRegister):
		return dialogSwitch, nil
	case d.kind == dialogRegister && key.Matches(msg, keys.SwitchToLogin):
		return dialogSwitch, nil
	case key.Matches(msg, keys.Submit):
		if d.focus < len(d.fields)-1 {
			return dialogNone, d.focusField(d.focus + 1)
		}
		for i, f := range d.fields {
			if strings.TrimSpace(f.Value()) == "" {
				d.err = d.labels[i] + " is required"
				return dialogNone, d.focusField(i)
			}
		}
		d.err = ""
		d.busy = true
		return dialogSubmit, nil
	case key.Matches(msg, keys.NextField):
		return dialogNone, d.focusField(d.focus + 1)
	case key.Matches(msg, keys.PrevField):
		return dialogNone, d.focusField(d.focus - 1)
	}

	var cmd tea.Cmd
	d.fields[d.focus], cmd = d.fields[d.focus].Update(msg)
	return dialogNone, cmd
}

// View implements Modal.
func (d *authDialog) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	title, switchHint := "Login", "ctrl+r: register instead"
	if d.kind == dialogRegister {
		title, switchHint = "Register", "ctrl+l: login instead"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")
	for i, label := range d.labels {
		labelStyle := styles.MutedText
		if i == d.focus {
			labelStyle = styles.AccentText
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(d.fields[i].View())
		b.WriteString("\n\n")
	}

	switch {
	case d.busy:
		b.WriteString(styles.WarningText.Render("Submitting..."))
	case d.err != "":
		b.WriteString(styles.DangerText.Render(truncate(d.err, DialogWidth)))
	default:
		b.WriteString(styles.ButtonPrimary.Render(title))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter: next/submit  esc: close"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(switchHint))

	box := styles.Dialog.Width(DialogWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
