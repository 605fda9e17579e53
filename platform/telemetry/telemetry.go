// Package telemetry reports failures to Sentry. Every function is a no-op
// until Init is called with a non-empty DSN.
package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

var enabled bool

func Init(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			return scrub(event)
		},
	})
	if err != nil {
		return fmt.Errorf("telemetry.Init: %w", err)
	}

	enabled = true
	return nil
}

func Enabled() bool { return enabled }

// CaptureError reports err with tags attached to its scope.
func CaptureError(err error, tags map[string]string) {
	if err == nil || !enabled {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

func Flush() {
	if enabled {
		sentry.Flush(flushTimeout)
	}
}

// Recoverer reports a handler panic and answers 500.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", rec)
			}
			CaptureError(err, map[string]string{"route": r.URL.Path, "panic": "true"})

			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

// scrub drops donor and rider addresses before an event leaves the process.
func scrub(event *sentry.Event) *sentry.Event {
	if event == nil {
		return nil
	}

	event.User.Email = ""
	event.User.IPAddress = ""

	if event.Request != nil {
		event.Request.Data = ""
		event.Request.QueryString = ""
		for k := range event.Request.Headers {
			switch k {
			case "Authorization", "Cookie":
				event.Request.Headers[k] = "[redacted]"
			}
		}
	}

	return event
}
