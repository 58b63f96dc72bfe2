// internal/api/client.go
//
// Base REST client for the SAFRA backend. Mirrors the two interceptors the
// backend contract assumes: every request carries the bearer token when a
// session exists, and a 401/403 response fires the on-unauthorized hook so
// the application can drop the session and return to login.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenFunc supplies the current bearer token, empty when logged out.
type TokenFunc func() string

// Client talks JSON over HTTP to the backend.
type Client struct {
	baseURL        string
	http           *http.Client
	token          TokenFunc
	onUnauthorized func()
	log            *zap.Logger
}

// Option customizes Client construction.
type Option func(*Client)

// WithToken sets the bearer token source.
func WithToken(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// WithOnUnauthorized registers the hook fired on 401/403 responses.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger attaches a diagnostics logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient overrides the underlying http.Client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the given base URL (including /api) with the
// given per-request timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// serverMessage is the error envelope the backend uses.
type serverMessage struct {
	Message string `json:"message"`
}

// do issues one request. body (when non-nil) is marshaled as JSON; out (when
// non-nil) receives the decoded response body. Every failure is an *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindGeneric, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Kind: KindGeneric, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &Error{Kind: KindNoResponse, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindGeneric, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Kind: KindGeneric, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	}

	var msg serverMessage
	_ = json.Unmarshal(raw, &msg)
	apiErr := &Error{Status: resp.StatusCode, Message: msg.Message}
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		apiErr.Kind = KindValidation
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		apiErr.Kind = KindUnauthorized
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case resp.StatusCode >= 500:
		apiErr.Kind = KindServer
	default:
		apiErr.Kind = KindGeneric
	}
	c.log.Warn("backend error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", msg.Message))
	return apiErr
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, query, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
