// Package session holds the process-wide authentication flag.
package session

import (
	"sync"

	"github.com/five82/kiosk/internal/storefront"
)

// User is the identity recorded at login.
type User struct {
	ID    int
	Name  string
	Email string
	Role  string
}

// Flag is the session flag source. The zero value is a signed-out session.
type Flag struct {
	mu        sync.RWMutex
	loggedIn  bool
	epoch     uint64
	token     string
	user      User
	observers []func(loggedIn bool)
}

// Ensure Flag can authenticate storefront calls.
var _ storefront.TokenSource = (*Flag)(nil)

// IsLogin reports whether a user session is currently authenticated.
func (f *Flag) IsLogin() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loggedIn
}

// Token returns the bearer token of the current session, or "".
func (f *Flag) Token() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.token
}

// Epoch counts flag transitions. Two reads with the same epoch saw the same
// session, even if a logout and a login happened in between reads of
// IsLogin.
func (f *Flag) Epoch() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.epoch
}

// User returns the identity recorded at login.
func (f *Flag) User() User {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user
}

// Login marks the session authenticated. Observers are notified only when
// the flag actually flips.
func (f *Flag) Login(auth storefront.AuthResponse) {
	f.mu.Lock()
	changed := !f.loggedIn
	if changed {
		f.epoch++
	}
	f.loggedIn = true
	f.token = auth.Token
	f.user = User{ID: auth.ID, Name: auth.Name, Email: auth.Email, Role: auth.Role}
	observers := f.observers
	f.mu.Unlock()

	if changed {
		notify(observers, true)
	}
}

// Logout clears the session.
func (f *Flag) Logout() {
	f.mu.Lock()
	changed := f.loggedIn
	if changed {
		f.epoch++
	}
	f.loggedIn = false
	f.token = ""
	f.user = User{}
	observers := f.observers
	f.mu.Unlock()

	if changed {
		notify(observers, false)
	}
}

// OnChange registers fn to run after every flag transition. fn runs on the
// goroutine that called Login or Logout, outside the lock.
func (f *Flag) OnChange(fn func(loggedIn bool)) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.observers = append(f.observers[:len(f.observers):len(f.observers)], fn)
}

func notify(observers []func(bool), loggedIn bool) {
	for _, fn := range observers {
		fn(loggedIn)
	}
}
