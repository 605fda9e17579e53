package mailgunclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
)

func TestClient_Send(t *testing.T) {
	t.Parallel()

	to := gofakeit.Email()
	forms := make(chan url.Values, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, _ := r.BasicAuth()
		if user != "api" || pass != "key-123" || r.URL.Path != "/v3/mg.example.org/messages" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = r.ParseForm()
		forms <- r.PostForm
		_, _ = w.Write([]byte(`{"message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "mg.example.org", "key-123", "Donations <donate@mg.example.org>", time.Second)

	err := c.Send(context.Background(), model.Message{To: to, Subject: "Hi", Body: "Thanks"})
	require.NoError(t, err)

	form := <-forms
	assert.Equal(t, to, form.Get("to"))
	assert.Equal(t, "Hi", form.Get("subject"))
	assert.Equal(t, "Thanks", form.Get("text"))
	assert.Equal(t, "Donations <donate@mg.example.org>", form.Get("from"))
}

func TestClient_SendErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "d", "k", "f", time.Second)

	require.ErrorIs(t, c.Send(context.Background(), model.Message{To: "a@b.c"}), model.ErrTransient)
	require.Error(t, c.Send(context.Background(), model.Message{}))
}
