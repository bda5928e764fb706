package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrUnauthorized matches API errors caused by a missing or rejected token.
var ErrUnauthorized = errors.New("unauthorized")

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Fetcher defines the remote calls the navigation surface depends on.
// It is implemented by *Client and can be faked in tests.
type Fetcher interface {
	GetProfile(ctx context.Context) (Profile, error)
	GetCart(ctx context.Context) ([]OrderLine, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// TokenSource supplies the bearer token attached to authenticated calls.
type TokenSource interface {
	Token() string
}

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	userAgent string
	log       logrus.FieldLogger
}

const (
	defaultAPIURL    = "http://127.0.0.1:5000/api/v1"
	defaultUserAgent = "kiosk/0.1"
	requestTimeout   = 5 * time.Second
)

// ClientOptions tune a Client. Zero values use defaults.
type ClientOptions struct {
	Tokens  TokenSource
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// NewClient builds a Client for the API rooted at apiURL.
func NewClient(apiURL string, opts ClientOptions) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		tokens:    opts.Tokens,
		userAgent: defaultUserAgent,
		log:       logger.WithField("component", "storefront"),
	}, nil
}

// GetProfile retrieves the signed-in user's profile.
func (c *Client) GetProfile(ctx context.Context) (Profile, error) {
	if c == nil {
		return Profile{}, fmt.Errorf("client is nil")
	}
	var payload Profile
	if err := c.do(ctx, http.MethodGet, "user", nil, &payload); err != nil {
		return Profile{}, err
	}
	return payload, nil
}

// GetCart retrieves the signed-in user's open order lines.
func (c *Client) GetCart(ctx context.Context) ([]OrderLine, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []OrderLine
	if err := c.do(ctx, http.MethodGet, "orders", nil, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []OrderLine{}
	}
	return payload, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	if c == nil {
		return AuthResponse{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return AuthResponse{}, fmt.Errorf("email and password required")
	}
	var payload AuthResponse
	if err := c.do(ctx, http.MethodPost, "login", req, &payload); err != nil {
		return AuthResponse{}, err
	}
	if payload.Token == "" {
		return AuthResponse{}, fmt.Errorf("login response missing token")
	}
	return payload, nil
}

// Register creates a customer account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	if c == nil {
		return RegisterResponse{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return RegisterResponse{}, fmt.Errorf("name, email and password required")
	}
	var payload RegisterResponse
	if err := c.do(ctx, http.MethodPost, "register", req, &payload); err != nil {
		return RegisterResponse{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	reqURL := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	entry := c.log.WithFields(logrus.Fields{
		"method":     method,
		"path":       "/" + path,
		"request_id": requestID,
	})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Debug("request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	entry.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).String(),
	}).Debug("request completed")

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= 400 || (decodeErr == nil && env.Status == "error") {
		apiErr := &APIError{Path: "/" + path, StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if dest == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
