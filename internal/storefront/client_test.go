package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultAPIURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultAPIURL)
	}

	u, err = parseBaseURL("example.com:1234/api/v1/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Path != "/api/v1" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpointsWithAuthHeaders(t *testing.T) {
	t.Parallel()

	var gotAuth, gotUserAgent, gotRequestID string
	var gotLogin LoginRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v1/user":
			_ = json.NewEncoder(w).Encode(SuccessResult{Status: "success", Data: Profile{ID: 7, Role: "user", Image: "https://x/y.png"}})
		case "/api/v1/orders":
			_ = json.NewEncoder(w).Encode(SuccessResult{Status: "success", Data: []OrderLine{
				{ID: 1, OrderQty: 2, Product: Product{Price: 100}},
				{ID: 2, OrderQty: 1, Product: Product{Price: 50}},
			}})
		case "/api/v1/login":
			_ = json.NewDecoder(r.Body).Decode(&gotLogin)
			_ = json.NewEncoder(w).Encode(SuccessResult{Status: "success", Data: AuthResponse{ID: 7, Role: "user", Token: "tok"}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/v1", ClientOptions{Tokens: staticToken("secret")})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	profile, err := c.GetProfile(ctx)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if profile.ID != 7 || !profile.IsCustomer() || profile.Image != "https://x/y.png" {
		t.Fatalf("GetProfile payload = %#v", profile)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want Bearer secret", gotAuth)
	}
	if !strings.HasPrefix(gotUserAgent, "kiosk/") {
		t.Fatalf("User-Agent = %q, want kiosk/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID missing")
	}

	lines, err := c.GetCart(ctx)
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}
	if len(lines) != 2 || CartTotal(lines) != 250 {
		t.Fatalf("GetCart = %#v, want 2 lines totalling 250", lines)
	}

	auth, err := c.Login(ctx, LoginRequest{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if auth.Token != "tok" || gotLogin.Email != "a@b.c" || gotLogin.Password != "pw" {
		t.Fatalf("Login = %#v, request = %#v", auth, gotLogin)
	}
}

func TestClient_EmptyCartIsNotNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":null}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, ClientOptions{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	lines, err := c.GetCart(context.Background())
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}
	if lines == nil || len(lines) != 0 {
		t.Fatalf("GetCart = %#v, want empty non-nil slice", lines)
	}
}

func TestClient_ErrorEnvelopeAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(ErrorResult{Status: "error", Message: "unauthorized"})
		case "/orders":
			_, _ = w.Write([]byte("{not-json"))
		case "/register":
			_ = json.NewEncoder(w).Encode(ErrorResult{Status: "error", Message: "email taken"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, ClientOptions{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.GetProfile(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("GetProfile error = %v, want ErrUnauthorized", err)
	}

	_, err = c.GetCart(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("GetCart error = %v, want decode response error", err)
	}

	_, err = c.Register(context.Background(), RegisterRequest{Name: "n", Email: "e", Password: "p"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "email taken" {
		t.Fatalf("Register error = %v, want APIError email taken", err)
	}
}

func TestClient_LoginValidatesInput(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", ClientOptions{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Login(context.Background(), LoginRequest{Email: " "}); err == nil {
		t.Fatalf("Login returned nil error, want validation error")
	}
	if _, err := c.Register(context.Background(), RegisterRequest{Email: "a"}); err == nil {
		t.Fatalf("Register returned nil error, want validation error")
	}
}
