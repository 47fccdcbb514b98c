// Package api is the gateway adapter between store operations and the REST
// backend: one HTTP request per domain verb, JSON parsed into domain
// records, failures normalized into typed errors. The adapter holds no
// collection state and never retries; refresh policy belongs to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/scanfact/scanfact/internal/common"
)

// Doer abstracts the HTTP transport so tests can stub it out.
// *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const defaultTimeout = 15 * time.Second

// Client performs authenticated REST calls against the backend.
//
// The bearer token is pulled from TokenFunc per request, so one Client
// instance survives login/logout cycles. On any 401/403 outside the login
// endpoint the AuthFailure hook runs before the error is returned, which is
// how the session gate learns that the credential went stale.
type Client struct {
	baseURL     string
	http        Doer
	timeout     time.Duration
	tokenFunc   func() string
	authFailure func()
}

type Option func(*Client)

// WithDoer substitutes the transport (tests, instrumented clients).
func WithDoer(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithTimeout overrides the per-request deadline. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTokenFunc installs the credential source, normally Gate.Token.
func WithTokenFunc(f func() string) Option {
	return func(c *Client) { c.tokenFunc = f }
}

// WithAuthFailureHook installs the 401/403 callback, normally
// Gate.ForceLogout.
func WithAuthFailureHook(f func()) Option {
	return func(c *Client) { c.authFailure = f }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		timeout: defaultTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// errorBody is the JSON shape the backend uses for failures.
type errorBody struct {
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// do runs one request. body (when non-nil) is marshalled to JSON; out (when
// non-nil) receives the decoded response body. withAuth controls whether the
// bearer token is attached and whether 401/403 trips the auth-failure hook;
// only the login call passes false.
func (c *Client) do(ctx context.Context, method, path string, body, out any, withAuth bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth && c.tokenFunc != nil {
		if token := c.tokenFunc(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp, path, withAuth)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &NetworkError{Err: fmt.Errorf("decoding response: %w", err)}
		}
	}
	return nil
}

// mapError turns a non-2xx response into the adapter's error taxonomy.
func (c *Client) mapError(resp *http.Response, path string, withAuth bool) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if !withAuth && eb.Code == common.DeactivatedCode {
			return ErrAccountDeactivated
		}
		if withAuth && c.authFailure != nil {
			c.authFailure()
		}
		return &AuthError{Status: resp.StatusCode}

	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: path}

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ValidationError{Status: resp.StatusCode, Field: eb.Field, Message: eb.text()}

	default:
		return fmt.Errorf("server error (status %d): %w", resp.StatusCode, common.ErrorInternal)
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, true)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out, true)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}
