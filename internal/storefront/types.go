package storefront

import (
	"encoding/json"
	"fmt"
)

// RoleCustomer is the role assigned to shoppers. Other roles (admin) manage
// the catalogue and have no cart.
const RoleCustomer = "user"

// Profile mirrors the payload returned by /user.
type Profile struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Image   string `json:"image"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// IsCustomer reports whether the profile belongs to a shopper.
func (p Profile) IsCustomer() bool {
	return p.Role == RoleCustomer
}

// Product describes the catalogue entry referenced by an order line.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
	Image       string `json:"image"`
}

// OrderLine is a single cart entry returned by /orders.
type OrderLine struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Product   Product `json:"product"`
	OrderQty  int     `json:"order_qty"`
}

// Subtotal returns price times quantity for the line.
func (l OrderLine) Subtotal() int {
	return l.Product.Price * l.OrderQty
}

// CartTotal sums the subtotals of every line.
func CartTotal(lines []OrderLine) int {
	total := 0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// LoginRequest is posted to /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is posted to /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse mirrors the /register payload.
type RegisterResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponse mirrors the /login payload.
type AuthResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// envelope wraps every API response.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// SuccessResult is the envelope written for successful calls.
type SuccessResult struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// ErrorResult is the envelope written for failed calls.
type ErrorResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// APIError is returned when the storefront answers with an error envelope
// or a non-2xx status.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.StatusCode, e.Message)
}
