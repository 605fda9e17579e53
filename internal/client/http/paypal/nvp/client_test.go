package nvpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csytan/triplecrownforheart/internal/model"
)

var creds = Credentials{User: "api_user", Password: "secret", Signature: "sig"}

func nvpServer(t *testing.T, respond func(form url.Values) url.Values) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("USER") != creds.User || r.PostForm.Get("VERSION") != apiVersion {
			_, _ = w.Write([]byte("ACK=Failure&L_ERRORCODE0=10002&L_LONGMESSAGE0=Security+header+is+not+valid"))
			return
		}
		_, _ = w.Write([]byte(respond(r.PostForm).Encode()))
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func row(values url.Values, i, txnID, ts string) {
	values.Set("L_TRANSACTIONID"+i, txnID)
	values.Set("L_TIMESTAMP"+i, ts)
	values.Set("L_TYPE"+i, "Donation")
}

func TestClient_SearchPagesByEndDate(t *testing.T) {
	t.Parallel()

	srv, calls := nvpServer(t, func(form url.Values) url.Values {
		v := url.Values{"ACK": {"Success"}}
		switch form.Get("ENDDATE") {
		case "":
			row(v, "0", "T5", "2015-05-05T00:00:00Z")
			row(v, "1", "T4", "2015-05-04T00:00:00Z")
		case "2015-05-04T00:00:00Z":
			row(v, "0", "T4", "2015-05-04T00:00:00Z")
			row(v, "1", "T3", "2015-05-03T00:00:00Z")
		case "2015-05-03T00:00:00Z":
			row(v, "0", "T2", "2015-05-02T00:00:00Z")
		}
		return v
	})

	c := NewClient(srv.Client(), srv.URL, creds, time.Second)
	c.pageSize = 2

	page, err := c.Search(context.Background(), time.Date(2015, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	ids := make([]string, 0, len(page.Summaries))
	for _, s := range page.Summaries {
		ids = append(ids, s.TransactionID)
	}
	assert.Equal(t, []string{"T5", "T4", "T3", "T2"}, ids)
	assert.False(t, page.Stalled)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_SearchStopsWhenWindowStalls(t *testing.T) {
	t.Parallel()

	srv, calls := nvpServer(t, func(form url.Values) url.Values {
		v := url.Values{"ACK": {"SuccessWithWarning"}, "L_ERRORCODE0": {codeResultsTruncated}}
		row(v, "0", "T1", "2015-05-04T00:00:00Z")
		row(v, "1", "T2", "2015-05-04T00:00:00Z")
		return v
	})

	c := NewClient(srv.Client(), srv.URL, creds, time.Second)

	page, err := c.Search(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.True(t, page.Stalled)
	assert.Len(t, page.Summaries, 2)
	assert.EqualValues(t, 2, calls.Load())
}

func TestClient_CallErrors(t *testing.T) {
	t.Parallel()

	t.Run("ack failure", func(t *testing.T) {
		t.Parallel()

		srv, _ := nvpServer(t, nil)
		c := NewClient(srv.Client(), srv.URL, Credentials{User: "wrong"}, time.Second)

		_, err := c.Call(context.Background(), methodTransactionSearch, nil)
		require.ErrorIs(t, err, model.ErrTransient)
		require.True(t, IsAPIError(err))
		assert.Contains(t, err.Error(), "10002")
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewClient(srv.Client(), srv.URL, creds, time.Second)
		_, err := c.Search(context.Background(), time.Now())
		require.ErrorIs(t, err, model.ErrTransient)
	})
}

func TestClient_Details(t *testing.T) {
	t.Parallel()

	srv, _ := nvpServer(t, func(form url.Values) url.Values {
		txn := form.Get("TRANSACTIONID")
		if txn == "MISMATCH" {
			txn = "OTHER"
		}
		return url.Values{
			"ACK":           {"Success"},
			"TRANSACTIONID": {txn},
			"FIRSTNAME":     {"Ada"},
			"LASTNAME":      {"Lovelace"},
			"AMT":           {"10.00"},
			"CURRENCYCODE":  {"CAD"},
			"L_NUMBER0":     {"a1b2c3d4e5"},
		}
	})

	c := NewClient(srv.Client(), srv.URL, creds, time.Second)

	d, err := c.Details(context.Background(), "TXN001")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", d.PayerName())
	assert.Equal(t, "a1b2c3d4e5", d.RecipientID)

	_, err = c.Details(context.Background(), "MISMATCH")
	require.ErrorIs(t, err, model.ErrMalformedRecord)
}
