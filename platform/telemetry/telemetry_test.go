package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_EmptyDSNDisables(t *testing.T) {
	require.NoError(t, Init("", "test", "dev"))
	assert.False(t, Enabled())

	assert.NotPanics(t, func() {
		CaptureError(errors.New("boom"), map[string]string{"op": "test"})
		Flush()
	})
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("handler exploded")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/paypal/ipn", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestScrub(t *testing.T) {
	event := &sentry.Event{
		User: sentry.User{Email: "rider@example.org", IPAddress: "10.0.0.1"},
		Request: &sentry.Request{
			Data:        "payer_email=donor%40example.org",
			QueryString: "email=x",
			Headers:     map[string]string{"Authorization": "Basic xyz", "Accept": "*/*"},
		},
	}

	out := scrub(event)

	assert.Empty(t, out.User.Email)
	assert.Empty(t, out.User.IPAddress)
	assert.Empty(t, out.Request.Data)
	assert.Empty(t, out.Request.QueryString)
	assert.Equal(t, "[redacted]", out.Request.Headers["Authorization"])
	assert.Equal(t, "*/*", out.Request.Headers["Accept"])
	assert.Nil(t, scrub(nil))
}
