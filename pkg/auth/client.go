package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dobby152/askelio-sub003/pkg/session"
)

// Endpoint paths of the Askelio auth service.
const (
	refreshPath  = "/auth/refresh"
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
)

// Result carries the outcome of a login or registration: the credential
// session for the lifecycle manager and the user profile for the
// application. Only the session portion is ever persisted by the manager.
type Result struct {
	Session *session.Session
	User    *session.UserSnapshot
}

// envelope is the response wrapper every auth endpoint uses.
type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		Session *sessionPayload       `json:"session"`
		User    *session.UserSnapshot `json:"user"`
	} `json:"data"`
	Error string `json:"error"`
}

type sessionPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	TokenType    string `json:"token_type"`
}

// Client speaks the Askelio auth API: token refresh, login and
// registration. It is intentionally not resilient: the lifecycle manager
// treats a failed renewal as terminal, and interactive login failures
// belong to the user, so no retry policy applies here.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client, e.g. for testing or proxies.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithRequestTimeout sets the per-request timeout of the default HTTP client.
func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates an auth API client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Refresh exchanges a refresh token for a new credential session.
// A response that is non-2xx or carries success=false means the backend
// rejected the token; the returned error wraps ErrRenewalRejected.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*session.Session, error) {
	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	body := map[string]string{"refresh_token": refreshToken}
	env, err := c.post(ctx, refreshPath, body, ErrRenewalRejected)
	if err != nil {
		return nil, err
	}

	sess := env.session()
	if sess == nil {
		return nil, fmt.Errorf("%w: refresh response carries no session", ErrUnexpectedResponse)
	}
	return sess, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Result, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, loginPath, body)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password, name string) (*Result, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	return c.authenticate(ctx, registerPath, body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*Result, error) {
	env, err := c.post(ctx, path, body, ErrAuthFailed)
	if err != nil {
		return nil, err
	}

	sess := env.session()
	if sess == nil {
		return nil, fmt.Errorf("%w: auth response carries no session", ErrUnexpectedResponse)
	}
	return &Result{Session: sess, User: env.Data.User}, nil
}

// post sends a JSON request and decodes the auth envelope. rejection is the
// sentinel wrapped when the backend answers but says no.
func (c *Client) post(ctx context.Context, path string, body any, rejection error) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// 64KB is generous for an auth envelope and bounds a misbehaving server.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: status %d", rejection, resp.StatusCode)
		}
		return nil, errors.Join(ErrUnexpectedResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", rejection, msg)
	}

	return &env, nil
}

// session converts the wire payload into the persisted record shape.
func (e *envelope) session() *session.Session {
	p := e.Data.Session
	if p == nil || p.AccessToken == "" {
		return nil
	}
	return &session.Session{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresAt:    p.ExpiresAt,
	}
}
