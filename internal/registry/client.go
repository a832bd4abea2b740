// Package registry holds one Source adapter per company register together
// with the upstream transport they share.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultUserAgent = "NDA-Generator/1.0"
	maxBodyBytes     = 4 << 20
)

// ErrMalformedResponse marks a 2xx upstream response that is not the JSON
// document the endpoint promises (HTML error pages, anti-bot challenges).
var ErrMalformedResponse = errors.New("registry: malformed upstream response")

// SourceUnavailableError is the only failure a Source reports.
type SourceUnavailableError struct {
	Source string
	Cause  error
}

func (e *SourceUnavailableError) Error() string {
	if e.Cause == nil {
		return e.Source + " unavailable"
	}
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Cause)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Cause }

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registry: http status %d from %s", e.StatusCode, e.URL)
}

func unavailable(source string, err error) error {
	var sue *SourceUnavailableError
	if errors.As(err, &sue) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("timeout: %w", err)
	}
	return &SourceUnavailableError{Source: source, Cause: err}
}

// Client performs validated JSON requests against one upstream.
type Client struct {
	httpClient *http.Client
	userAgent  string
	header     http.Header
	limiter    *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// WithRateLimit caps outbound requests per second; rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: NewHTTPClient(),
		userAgent:  defaultUserAgent,
		header:     http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient returns a transport tuned for short registry calls. Request
// deadlines come from the caller's context.
func NewHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Transport: tr}
}

// Request describes one upstream call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	// Body is sent as application/json when non-nil.
	Body any
}

// FetchJSON performs req and decodes the validated body into out.
func (c *Client) FetchJSON(ctx context.Context, req Request, out any) error {
	body, err := c.fetch(ctx, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, req Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	var reader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, reader)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if strings.TrimSpace(c.userAgent) != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	for k, vs := range c.header {
		httpReq.Header[k] = vs
	}
	for k, vs := range req.Header {
		httpReq.Header[k] = vs
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: req.URL}
	}
	if ct := resp.Header.Get("Content-Type"); strings.Contains(strings.ToLower(ct), "text/html") {
		return nil, fmt.Errorf("%w: content type %q", ErrMalformedResponse, ct)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if err := sniffJSON(body); err != nil {
		return nil, err
	}
	return body, nil
}

// sniffJSON rejects bodies whose first non-whitespace byte cannot start a
// JSON object or array.
func sniffJSON(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	switch trimmed[0] {
	case '[', '{':
		return nil
	case '<':
		return fmt.Errorf("%w: html document", ErrMalformedResponse)
	default:
		return fmt.Errorf("%w: unexpected leading byte %q", ErrMalformedResponse, trimmed[0])
	}
}
