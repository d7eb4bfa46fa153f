// Package observability reports unexpected client failures to Sentry.
package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

// InitSentry configures the global Sentry client. An empty dsn disables
// reporting.
func InitSentry(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
	})
}

func FlushSentry() {
	sentry.Flush(flushTimeout)
}

// Reporter sends errors to a Sentry hub.
type Reporter struct {
	hub *sentry.Hub
}

// NewReporter reports through hub, or through the global hub when nil.
func NewReporter(hub *sentry.Hub) *Reporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &Reporter{hub: hub}
}

// Capture reports err with the given tags. A nil err is ignored.
func (r *Reporter) Capture(err error, tags map[string]string) {
	if err == nil {
		return
	}
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		r.hub.CaptureException(err)
	})
}

func (r *Reporter) Flush() bool {
	return r.hub.Flush(flushTimeout)
}
