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

	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
	"github.com/dmitrijs2005/mechanicassist/internal/logging"
)

const defaultUserAgent = "mechanicassist-cli"

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL   string
	http      Doer
	session   *session.Session
	logger    logging.Logger
	userAgent string
	shared    bool
	extra     []Middleware
	handler   Handler
}

type Option func(*Client)

// WithHTTPClient replaces the transport, e.g. to set a timeout.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithSharedRefresh collapses concurrent refreshes of one refresh token into
// a single request.
func WithSharedRefresh() Option {
	return func(c *Client) { c.shared = true }
}

// WithMiddleware appends steps that run right before the transport.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) { c.extra = append(c.extra, mws...) }
}

// New builds a client for the backend rooted at baseURL, e.g.
// "http://10.0.2.2:8000/api".
func New(baseURL string, sess *session.Session, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 30 * time.Second},
		session:   sess,
		logger:    logging.Nop(),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	refresher := NewRefresher(sess, c.send, c.logger)
	if c.shared {
		refresher.Shared()
	}

	mws := []Middleware{
		RequestID(),
		refresher.Middleware,
		Bearer(sess, c.logger),
		RequestLog(c.logger),
	}
	c.handler = Chain(c.send, append(mws, c.extra...)...)
	return c, nil
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *session.Session {
	return c.session
}

// send is the transport step: it performs exactly one HTTP exchange.
func (c *Client) send(ctx context.Context, call *Call) (*Response, error) {
	target := c.baseURL + call.Path
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	var body io.Reader
	if call.Body != nil {
		body = bytes.NewReader(call.Body)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, vs := range call.Header {
		req.Header[k] = append([]string(nil), vs...)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, call.Method, call.Path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %w", ErrUnavailable, call.Path, err)
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: b}, nil
}

// Do runs call through the pipeline. A non-2xx final response is returned
// together with an *APIError.
func (c *Client) Do(ctx context.Context, call *Call) (*Response, error) {
	resp, err := c.handler(ctx, call)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return resp, newAPIError(resp)
	}
	return resp, nil
}

// JSON sends in as the JSON body (if not nil) and decodes the response into
// out (if not nil).
func (c *Client) JSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	call := &Call{Method: method, Path: path, Query: query, Header: http.Header{}}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		call.Body = b
	}

	resp, err := c.Do(ctx, call)
	if err != nil {
		return err
	}

	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}
