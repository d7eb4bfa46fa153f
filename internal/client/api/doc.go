// Package api is the HTTP client for the dispatch backend.
//
// # Overview
//
// Every call goes through one pipeline built from Middleware values,
// composed once in a fixed order:
//
//	RequestID -> Refresher -> Bearer -> RequestLog -> transport
//
//  1. RequestID stamps X-Request-ID so a call and its replay share an id.
//  2. Refresher handles HTTP 401: it exchanges the stored refresh token for a
//     new access token and replays the failed call exactly once. If the
//     exchange fails the stored credentials are cleared and ErrSessionExpired
//     is returned.
//  3. Bearer reads the access token from the session and sets the
//     Authorization header.
//  4. RequestLog logs each wire attempt.
//
// A Response records whether it came back directly or after a refresh (see
// Outcome). The replay runs the inner part of the chain only, so a replayed
// 401 is returned to the caller instead of refreshing again.
//
// # Error Handling
//
// Non-2xx responses become *APIError, which matches ErrUnauthorized,
// ErrForbidden, ErrNotFound or ErrBadRequest with errors.Is. Transport
// failures wrap ErrUnavailable. Nothing is retried except the single replay
// after a refresh.
//
// # Concurrency
//
// Client is safe for concurrent use. Concurrent calls that hit 401 at the
// same time each run their own refresh unless WithSharedRefresh is set.
package api
