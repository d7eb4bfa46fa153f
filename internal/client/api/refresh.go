package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
	"github.com/dmitrijs2005/mechanicassist/internal/logging"
	"golang.org/x/sync/singleflight"
)

const RefreshPath = "/auth/token/refresh/"

var errNoAccessToken = errors.New("refresh response carries no access token")

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// Refresher recovers a call that failed with 401 by refreshing the access
// token and replaying the call once.
type Refresher struct {
	session *session.Session
	send    Handler
	logger  logging.Logger
	group   *singleflight.Group
}

// NewRefresher builds a Refresher. send must bypass the pipeline so the
// refresh request carries no bearer token and is never itself refreshed.
func NewRefresher(sess *session.Session, send Handler, logger logging.Logger) *Refresher {
	return &Refresher{session: sess, send: send, logger: logger}
}

// Shared makes concurrent refreshes of the same refresh token share one
// request.
func (r *Refresher) Shared() *Refresher {
	r.group = &singleflight.Group{}
	return r
}

func (r *Refresher) Middleware(next Handler) Handler {
	return func(ctx context.Context, call *Call) (*Response, error) {
		resp, err := next(ctx, call)
		if err != nil || resp.StatusCode != http.StatusUnauthorized {
			return resp, err
		}
		return r.replay(ctx, next, call, resp)
	}
}

// replay runs after a 401. It calls next, not the middleware, so the
// replayed call cannot trigger another refresh.
func (r *Refresher) replay(ctx context.Context, next Handler, call *Call, failed *Response) (*Response, error) {
	refreshToken, err := r.session.RefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		return failed, nil
	}

	access, err := r.refresh(ctx, refreshToken)
	if err != nil && interrupted(ctx, err) {
		r.logger.Debug(ctx, "token refresh interrupted, keeping session", "path", call.Path, "error", err)
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	if err != nil {
		r.logger.Warn(ctx, "token refresh failed, clearing session", "path", call.Path, "error", err)
		if cerr := r.session.Clear(ctx); cerr != nil {
			r.logger.Error(ctx, "clear session", "error", cerr)
		}
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	r.logger.Debug(ctx, "token refreshed, replaying call", "method", call.Method, "path", call.Path)

	resp, err := next(ctx, call.withHeader(AuthorizationHeader, bearer(access)))
	if resp != nil {
		resp.Outcome = OutcomeRefreshedAndReplayed
	}
	return resp, err
}

// interrupted reports whether a refresh failed because the caller gave up or
// the request timed out. The refresh token was not rejected then.
func interrupted(ctx context.Context, err error) bool {
	var ne net.Error
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &ne) && ne.Timeout())
}

func (r *Refresher) refresh(ctx context.Context, refreshToken string) (string, error) {
	if r.group == nil {
		return r.exchange(ctx, refreshToken)
	}
	v, err, _ := r.group.Do(refreshToken, func() (any, error) {
		return r.exchange(ctx, refreshToken)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// exchange trades the refresh token for a new access token and stores it.
func (r *Refresher) exchange(ctx context.Context, refreshToken string) (string, error) {
	body, err := json.Marshal(refreshRequest{Refresh: refreshToken})
	if err != nil {
		return "", err
	}

	resp, err := r.send(ctx, &Call{Method: http.MethodPost, Path: RefreshPath, Header: http.Header{}, Body: body})
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", newAPIError(resp)
	}

	var out refreshResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if out.Access == "" {
		return "", errNoAccessToken
	}

	if err := r.session.SetAccessToken(ctx, out.Access); err != nil {
		return "", err
	}
	if out.Refresh != "" {
		if err := r.session.SetRefreshToken(ctx, out.Refresh); err != nil {
			return "", err
		}
	}
	return out.Access, nil
}
