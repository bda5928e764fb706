package ui

import (
	"strings"

	"github.com/five82/kiosk/internal/nav"
)

type menuAction int

const (
	menuProfile menuAction = iota
	menuCart
	menuLogout
)

type menuItem struct {
	label  string
	action menuAction
}

// profileMenu is the dropdown under the profile affordance.
type profileMenu struct {
	open     bool
	items    []menuItem
	selected int
}

// menuItemsFor lists the dropdown entries for mode. Only customers get a
// cart entry; anonymous visitors get none.
func menuItemsFor(mode nav.Mode) []menuItem {
	switch mode {
	case nav.ModeCustomer:
		return []menuItem{{"Profile", menuProfile}, {"Cart", menuCart}, {"Logout", menuLogout}}
	case nav.ModeOther:
		return []menuItem{{"Profile", menuProfile}, {"Logout", menuLogout}}
	default:
		return nil
	}
}

// Open shows the dropdown for mode. It stays closed when mode has no entries.
func (pm *profileMenu) Open(mode nav.Mode) {
	pm.items = menuItemsFor(mode)
	pm.selected = 0
	pm.open = len(pm.items) > 0
}

func (pm *profileMenu) Close() {
	pm.open = false
}

func (pm *profileMenu) Move(delta int) {
	if len(pm.items) == 0 {
		return
	}
	pm.selected = (pm.selected + delta + len(pm.items)) % len(pm.items)
}

// Selected returns the highlighted entry.
func (pm profileMenu) Selected() (menuItem, bool) {
	if !pm.open || pm.selected < 0 || pm.selected >= len(pm.items) {
		return menuItem{}, false
	}
	return pm.items[pm.selected], true
}

func (pm profileMenu) View(theme Theme) string {
	styles := theme.Styles()
	lines := make([]string, 0, len(pm.items))
	for i, item := range pm.items {
		label := padRight(item.label, 10)
		if i == pm.selected {
			lines = append(lines, styles.Selected.Render(label))
			continue
		}
		if item.action == menuLogout {
			lines = append(lines, styles.DangerText.Render(label))
			continue
		}
		lines = append(lines, styles.Text.Render(label))
	}
	return styles.Menu.Render(strings.Join(lines, "\n"))
}
