package api

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mechanicassist/internal/client/session"
	"github.com/dmitrijs2005/mechanicassist/internal/logging"
	"github.com/google/uuid"
)

const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
)

func bearer(token string) string {
	return "Bearer " + token
}

// Bearer sets the Authorization header from the stored access token.
// A failed store read is logged and the call goes out without the header,
// which the backend answers with a 401.
func Bearer(sess *session.Session, logger logging.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) (*Response, error) {
			token, err := sess.AccessToken(ctx)
			switch {
			case err != nil:
				logger.Warn(ctx, "access token unavailable, sending unauthenticated", "path", call.Path, "error", err)
			case token != "":
				call = call.withHeader(AuthorizationHeader, bearer(token))
			}
			return next(ctx, call)
		}
	}
}

// RequestID stamps a correlation id on calls that do not carry one.
func RequestID() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) (*Response, error) {
			if call.Header.Get(RequestIDHeader) == "" {
				call = call.withHeader(RequestIDHeader, uuid.NewString())
			}
			return next(ctx, call)
		}
	}
}

// RequestLog logs every wire attempt.
func RequestLog(logger logging.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) (*Response, error) {
			start := time.Now()
			resp, err := next(ctx, call)

			args := []any{
				"method", call.Method,
				"path", call.Path,
				"request_id", call.Header.Get(RequestIDHeader),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if err != nil {
				logger.Warn(ctx, "api call failed", append(args, "error", err)...)
				return resp, err
			}
			logger.Debug(ctx, "api call", append(args, "status", resp.StatusCode)...)
			return resp, nil
		}
	}
}
