// Package services wraps the dispatch backend endpoints in typed calls.
// Wrappers add no validation and no retries; authentication, token refresh
// and error mapping happen in the api client underneath.
package services

import (
	"context"
	"net/url"
)

// Requester sends one JSON call through the authenticated pipeline.
// *api.Client satisfies it.
type Requester interface {
	JSON(ctx context.Context, method, path string, query url.Values, in, out any) error
}
