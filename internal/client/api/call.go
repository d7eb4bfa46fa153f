package api

import (
	"context"
	"net/http"
	"net/url"
)

// Call is one backend request. The body is kept as bytes so the call can be
// replayed after a token refresh.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

func (c *Call) clone() *Call {
	cp := *c
	cp.Header = c.Header.Clone()
	if cp.Header == nil {
		cp.Header = http.Header{}
	}
	return &cp
}

// withHeader returns a copy of c with key set to value.
func (c *Call) withHeader(key, value string) *Call {
	cp := c.clone()
	cp.Header.Set(key, value)
	return cp
}

// Outcome tells how a response was obtained.
type Outcome int

const (
	// OutcomeDirect is the response to the first attempt.
	OutcomeDirect Outcome = iota
	// OutcomeRefreshedAndReplayed is the response to the single replay that
	// follows a successful token refresh.
	OutcomeRefreshedAndReplayed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRefreshedAndReplayed:
		return "refreshed_and_replayed"
	default:
		return "direct"
	}
}

// Response is a fully read backend response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Outcome    Outcome
}

func (r *Response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Handler performs a call.
type Handler func(ctx context.Context, call *Call) (*Response, error)

// Middleware wraps a Handler with one step of the pipeline.
type Middleware func(next Handler) Handler

// Chain wraps h so that mws[0] runs first and h runs last.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
