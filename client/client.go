// Package client is the shared REST wrapper used by every resource store: it
// resolves paths against a base URL, applies the request timeout, speaks JSON,
// attaches the session bearer token and turns 401 answers into a forced
// session expiry.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
)

const (
	DefaultBaseURL = "http://localhost:5000/api"
	DefaultTimeout = 10 * time.Second
)

type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// TokenSource yields the current bearer token, empty when logged out.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string {
	if f == nil {
		return ""
	}
	return f()
}

// UnauthorizedHandler runs once per call answered with 401. Calls it issues
// with the context it receives never re-enter it.
type UnauthorizedHandler func(ctx context.Context, res *Response)

// Client wraps outbound calls to the wallet API.
type Client struct {
	baseURL        string
	timeout        time.Duration
	transport      Transport
	tokens         TokenSource
	onUnauthorized UnauthorizedHandler
	logger         Logger
}

type handlingKey struct{}

// Option customizes a Client.
type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimRight(url, "/")
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithTransport(t Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) {
		c.onUnauthorized = h
	}
}

func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Client using the fiber transport unless overridden.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		transport: NewFiberTransport(),
		logger:    defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// SetUnauthorizedHandler replaces the 401 handler after construction, for
// wiring where the handler owner is built after the client.
func (c *Client) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.onUnauthorized = h
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, in, out)
}

func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPatch, path, in, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do performs a single call. in is encoded as JSON when non nil, out is
// decoded from the response body when non nil and the body is not empty.
func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	req := &Request{
		Method: method,
		URL:    c.resolve(path),
		Header: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		Timeout: c.timeout,
	}

	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "failed to encode request body")
		}
		req.Body = body
	}

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header["Authorization"] = "Bearer " + token
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.transport.RoundTrip(ctx, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger.Error("API Error: %s %s timed out after %s", method, req.URL, c.timeout)
			return annotate(ErrTimeout, err, map[string]any{"method": method, "url": req.URL})
		}
		c.logger.Error("API Error: %s %s: %v", method, req.URL, err)
		return annotate(ErrTransport, err, map[string]any{"method": method, "url": req.URL})
	}

	if res.StatusCode == http.StatusUnauthorized {
		c.logger.Error("API Error: %s %s: %s", method, req.URL, string(res.Body))
		c.unauthorized(ctx, res)
		return annotate(ErrUnauthorized, nil, map[string]any{"method": method, "url": req.URL, "status": res.StatusCode})
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.logger.Error("API Error: %s %s: %d %s", method, req.URL, res.StatusCode, string(res.Body))
		return annotate(ErrUnexpectedStatus, nil, map[string]any{
			"method": method,
			"url":    req.URL,
			"status": res.StatusCode,
			"body":   string(res.Body),
		})
	}

	if out == nil || len(res.Body) == 0 {
		return nil
	}

	if err := json.Unmarshal(res.Body, out); err != nil {
		return annotate(ErrDecode, err, map[string]any{"method": method, "url": req.URL})
	}
	return nil
}

// unauthorized invokes the handler once for the failed call. Calls made from
// within the handler carry its context and do not trigger it again.
func (c *Client) unauthorized(ctx context.Context, res *Response) {
	if c.onUnauthorized == nil {
		return
	}
	if handling, _ := ctx.Value(handlingKey{}).(bool); handling {
		c.logger.Debug("401 raised from the unauthorized handler, skipping")
		return
	}
	c.onUnauthorized(context.WithValue(ctx, handlingKey{}, true), res)
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

type defLogger struct{}

func (defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] API "+newline(format), args...)
}

func (defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] API "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
