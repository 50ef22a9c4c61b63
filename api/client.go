package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orchidsoft/taskgate"
)

// Sentinel errors mapped from backend status codes.
var (
	// ErrUnauthorized is returned for 401 responses outside the login flow.
	ErrUnauthorized = errors.New("api: unauthorized")
	// ErrForbidden is returned for 403 responses.
	ErrForbidden = errors.New("api: forbidden")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("api: not found")
	// ErrValidation is returned for 400 and 422 responses.
	ErrValidation = errors.New("api: validation failed")
	// ErrRateLimited is returned for 429 responses.
	ErrRateLimited = errors.New("api: rate limited")
	// ErrServiceUnavailable is returned for 5xx responses.
	ErrServiceUnavailable = errors.New("api: service unavailable")
)

// Error carries the decoded backend error payload. It unwraps to one of
// the package sentinels so callers can match on category.
type Error struct {
	StatusCode int
	Detail     string
	Fields     map[string][]string

	sentinel error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Detail)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msgs := range e.Fields {
			parts = append(parts, field+": "+strings.Join(msgs, "; "))
		}
		sort.Strings(parts)
		return fmt.Sprintf("api: %d: %s", e.StatusCode, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("api: %d", e.StatusCode)
}

func (e *Error) Unwrap() error { return e.sentinel }

// TokenSource supplies the bearer token for authenticated calls. An empty
// token with a nil error means the request goes out unauthenticated.
// token.Repository satisfies this interface.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// Config holds the client tunables. BaseURL is required.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// HTTPClient overrides the default transport; Timeout is ignored
	// when it is set.
	HTTPClient *http.Client
}

// Client talks to the backend. Safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	tokens    TokenSource
	userAgent string
}

// NewClient builds a Client. tokens may be nil for a client that only
// performs unauthenticated calls.
func NewClient(cfg Config, tokens TokenSource) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api: BaseURL required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse BaseURL: %w", err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = "taskgate/1.0"
	}

	return &Client{
		base:      base,
		http:      hc,
		tokens:    tokens,
		userAgent: ua,
	}, nil
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

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := taskgate.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)

	if c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("api: read access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
		return nil
	}

	return c.decodeError(resp)
}

func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		sentinel:   sentinelFor(resp.StatusCode),
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(data) > 0 {
		apiErr.Detail, apiErr.Fields = parseErrorBody(data)
	}

	return apiErr
}

func sentinelFor(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusForbidden:
		return ErrForbidden
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return ErrServiceUnavailable
	default:
		return nil
	}
}

// parseErrorBody handles the backend's two error shapes: a {"detail": ...}
// object, or a per-field map of validation messages.
func parseErrorBody(data []byte) (string, map[string][]string) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return strings.TrimSpace(string(data)), nil
	}

	if detail, ok := raw["detail"]; ok {
		var s string
		if err := json.Unmarshal(detail, &s); err == nil {
			return s, nil
		}
	}

	fields := make(map[string][]string, len(raw))
	for field, msg := range raw {
		var list []string
		if err := json.Unmarshal(msg, &list); err == nil {
			fields[field] = list
			continue
		}
		var single string
		if err := json.Unmarshal(msg, &single); err == nil {
			fields[field] = []string{single}
		}
	}
	if len(fields) == 0 {
		return "", nil
	}
	return "", fields
}
