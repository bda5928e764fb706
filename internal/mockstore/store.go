// Package mockstore is an in-memory storefront API for local runs and tests.
// It serves the same envelope and routes as the real storefront.
package mockstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/five82/kiosk/internal/storefront"
)

var (
	errInvalidCredentials = errors.New("invalid email or password")
	errEmailTaken         = errors.New("email already registered")
)

type account struct {
	profile      storefront.Profile
	passwordHash []byte
}

// Store holds accounts, sessions and carts.
type Store struct {
	mu       sync.RWMutex
	nextID   int
	accounts map[int]*account
	byEmail  map[string]int
	sessions map[string]int
	carts    map[int][]storefront.OrderLine
	failCart bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		nextID:   1,
		accounts: make(map[int]*account),
		byEmail:  make(map[string]int),
		sessions: make(map[string]int),
		carts:    make(map[int][]storefront.OrderLine),
	}
}

// Seed creates a customer with a two-line cart and an admin.
//
//	customer@kiosk.test / customer
//	admin@kiosk.test    / admin
func (s *Store) Seed() error {
	customer, err := s.Register(storefront.RegisterRequest{Name: "Ana Customer", Email: "customer@kiosk.test", Password: "customer"})
	if err != nil {
		return err
	}
	if _, err := s.createAccount("Bo Admin", "admin@kiosk.test", "admin", "admin"); err != nil {
		return err
	}
	s.SetCart(customer.ID, []storefront.OrderLine{
		{ID: 1, ProductID: 1, OrderQty: 2, Product: storefront.Product{ID: 1, Name: "RWANDA Beans", Price: 299900, Stock: 200}},
		{ID: 2, ProductID: 2, OrderQty: 1, Product: storefront.Product{ID: 2, Name: "ETHIOPIA Beans", Price: 309900, Stock: 150}},
	})
	return nil
}

// Register creates a customer account.
func (s *Store) Register(req storefront.RegisterRequest) (storefront.Profile, error) {
	return s.createAccount(req.Name, req.Email, req.Password, storefront.RoleCustomer)
}

func (s *Store) createAccount(name, email, password, role string) (storefront.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return storefront.Profile{}, fmt.Errorf("name, email and password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return storefront.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return storefront.Profile{}, errEmailTaken
	}
	id := s.nextID
	s.nextID++
	acct := &account{
		profile:      storefront.Profile{ID: id, Name: strings.TrimSpace(name), Email: email, Role: role},
		passwordHash: hash,
	}
	s.accounts[id] = acct
	s.byEmail[email] = id
	return acct.profile, nil
}

// Login verifies credentials and issues a session token.
func (s *Store) Login(req storefront.LoginRequest) (storefront.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	s.mu.RLock()
	id, ok := s.byEmail[email]
	var acct *account
	if ok {
		acct = s.accounts[id]
	}
	s.mu.RUnlock()
	if acct == nil {
		return storefront.AuthResponse{}, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return storefront.AuthResponse{}, errInvalidCredentials
		}
		return storefront.AuthResponse{}, fmt.Errorf("compare password: %w", err)
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = id
	s.mu.Unlock()

	p := acct.profile
	return storefront.AuthResponse{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role, Token: token}, nil
}

// Authenticate resolves a session token to an account id.
func (s *Store) Authenticate(token string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessions[token]
	return id, ok
}

// Profile returns the profile for id.
func (s *Store) Profile(id int) (storefront.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	if !ok {
		return storefront.Profile{}, false
	}
	return acct.profile, true
}

// SetProfileImage updates the image URI shown in the navigation bar.
func (s *Store) SetProfileImage(id int, image string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acct, ok := s.accounts[id]; ok {
		acct.profile.Image = image
	}
}

// Cart returns a copy of the order lines for id.
func (s *Store) Cart(id int) []storefront.OrderLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := s.carts[id]
	dup := make([]storefront.OrderLine, len(lines))
	copy(dup, lines)
	return dup
}

// SetCart replaces the order lines for id.
func (s *Store) SetCart(id int, lines []storefront.OrderLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := make([]storefront.OrderLine, len(lines))
	copy(dup, lines)
	s.carts[id] = dup
}

// SetCartFailure makes /orders answer 500 while fail is true.
func (s *Store) SetCartFailure(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCart = fail
}

func (s *Store) cartFailing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failCart
}
