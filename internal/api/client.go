// Package api is the HTTP client for the marketplace API. It issues
// authenticated, time-bounded requests and normalizes every failure mode
// into either a *RequestError (transport) or an *APIError (HTTP status).
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
	"time"

	"github.com/servly-app/servly/internal/storage"
)

// DefaultTimeout bounds every request unless overridden per call.
const DefaultTimeout = 15 * time.Second

// Notifier receives user-facing notifications for transient transport
// failures, the CLI analog of a toast. HTTP-status errors never notify;
// callers decide whether to surface those.
type Notifier interface {
	Notify(message string)
}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}

// Client talks to the marketplace API. The bearer token is read from
// durable storage on every request; an absent token means the request
// simply goes out unauthenticated.
type Client struct {
	baseURL    string
	timeout    time.Duration
	store      storage.Store
	notifier   Notifier
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithNotifier installs the transient-failure notifier.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

func NewClient(baseURL string, store storage.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		timeout:    DefaultTimeout,
		store:      store,
		notifier:   noopNotifier{},
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is the standard API envelope. A nil Data means the server
// returned an empty body, which is a valid null result.
type Response struct {
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// RequestOptions carries optional per-request settings.
type RequestOptions struct {
	// Query is appended to the request URL.
	Query url.Values
	// IdempotencyKey is sent as the Idempotency-Key header when set.
	IdempotencyKey string
	// Timeout overrides the client default for this request only.
	Timeout time.Duration
}

func (c *Client) Get(ctx context.Context, path string, opts RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts)
}

func (c *Client) Post(ctx context.Context, path string, body any, opts RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body, opts)
}

func (c *Client) Put(ctx context.Context, path string, body any, opts RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, body, opts)
}

func (c *Client) Patch(ctx context.Context, path string, body any, opts RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodPatch, path, body, opts)
}

func (c *Client) Delete(ctx context.Context, path string, opts RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, opts)
}

func (c *Client) do(ctx context.Context, method, path string, body any, opts RequestOptions) (*Response, error) {
	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqURL := c.baseURL + path
	if len(opts.Query) > 0 {
		reqURL += "?" + opts.Query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if opts.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(err)
	}

	// An empty body is a valid null result, not a parse error.
	if len(bytes.TrimSpace(respBody)) == 0 {
		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &Response{}, nil
	}

	var apiResp Response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(apiResp, respBody)}
	}

	return &apiResp, nil
}

// token reads the bearer token from durable storage. Absence or a storage
// failure degrades to an unauthenticated request.
func (c *Client) token(ctx context.Context) string {
	if c.store == nil {
		return ""
	}
	token, err := c.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return ""
	}
	return token
}

// transportError normalizes a failed round trip and fires the notifier.
func (c *Client) transportError(err error) error {
	reqErr := &RequestError{Err: err}
	if errors.Is(err, context.DeadlineExceeded) {
		reqErr.Timeout = true
		c.notifier.Notify("the request timed out, please try again")
	} else {
		reqErr.Network = true
		c.notifier.Notify("could not reach the server, please try again")
	}
	return reqErr
}

// errorMessage prefers the server's human-readable field over the raw body.
func errorMessage(resp Response, raw []byte) string {
	if resp.Message != "" {
		return resp.Message
	}
	if resp.Error != "" {
		return resp.Error
	}
	return string(raw)
}
