// Package client is a Go client for the bulletins HTTP API.
//
// Errors returned by the server are decoded back into *errors.Error values
// carrying the server's code, so callers can test them with errors.Is the
// same way they would against a local service:
//
//	c := client.New("http://localhost:8080")
//	m, err := c.Documents(document.KindTemplate).Get(ctx, id)
//	if errors.IsNotFound(err) {
//	    ...
//	}
//
// Idempotent requests (GET, PUT, DELETE) are retried on network errors and
// transient 5xx responses. POST requests are sent once.
package client

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

	"github.com/matzehuels/bulletins/pkg/buildinfo"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/httputil"
	"github.com/matzehuels/bulletins/pkg/observability"
)

const (
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	// DefaultAttempts is the number of tries for idempotent requests.
	DefaultAttempts = 3

	// DefaultRetryDelay is the initial backoff between attempts.
	DefaultRetryDelay = 200 * time.Millisecond

	apiPrefix = "/api/v1"
)

// Client talks to a bulletins server.
type Client struct {
	base     string
	http     *http.Client
	headers  map[string]string
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithHeader sets a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithRetry sets the attempts and initial backoff for idempotent requests.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// New creates a client for the server at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:     strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		headers:  map[string]string{"User-Agent": "bulletins/" + buildinfo.Version},
		attempts: DefaultAttempts,
		delay:    DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Version returns the build information of the server.
func (c *Client) Version(ctx context.Context) (buildinfo.Info, error) {
	var info buildinfo.Info
	err := c.do(ctx, http.MethodGet, "/version", nil, &info)
	return info, err
}

// do sends a request with in as JSON body (if non-nil) and decodes the
// response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "encode request")
		}
		body = data
	}

	attempts := 1
	if method != http.MethodPost {
		attempts = c.attempts
	}
	return httputil.Retry(ctx, attempts, c.delay, func() error {
		return c.send(ctx, method, path, body, out)
	})
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, out any) error {
	u := c.base + apiPrefix + path
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host := req.URL.Host
	start := time.Now()
	hooks.OnRequest(ctx, method, host, path)

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		if ctx.Err() != nil {
			return errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "%s %s", method, path)
		}
		return httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", method, path))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 300 {
		err := decodeError(resp)
		if httputil.IsRetryableStatus(resp.StatusCode) {
			return httputil.Retryable(err)
		}
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "decode %s %s response", method, path)
	}
	return nil
}

// decodeError turns an error response into an *errors.Error. Bodies that
// are not the API error shape are reported with a code derived from the
// status.
func decodeError(resp *http.Response) error {
	var body struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err == nil && body.Code != "" {
		return errors.New(body.Code, "%s", body.Message)
	}

	code := errors.ErrCodeInternal
	switch {
	case resp.StatusCode == http.StatusNotFound:
		code = errors.ErrCodeNotFound
	case resp.StatusCode < 500:
		code = errors.ErrCodeInvalidInput
	case resp.StatusCode == http.StatusBadGateway, resp.StatusCode == http.StatusServiceUnavailable:
		code = errors.ErrCodeNetwork
	case resp.StatusCode == http.StatusGatewayTimeout:
		code = errors.ErrCodeTimeout
	}
	return errors.New(code, "unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
}

func pathf(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		if s, ok := a.(string); ok {
			escaped[i] = url.PathEscape(s)
			continue
		}
		escaped[i] = a
	}
	return fmt.Sprintf(format, escaped...)
}
