package nvpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	convnvp "github.com/csytan/triplecrownforheart/internal/converter/nvp"
	"github.com/csytan/triplecrownforheart/internal/model"
)

const (
	DefaultURL = "https://api-3t.paypal.com/nvp"
	apiVersion = "122"

	methodTransactionSearch     = "TransactionSearch"
	methodGetTransactionDetails = "GetTransactionDetails"

	ackSuccess            = "Success"
	ackSuccessWithWarning = "SuccessWithWarning"

	// TransactionSearch never returns more than this many rows.
	DefaultPageSize = 100
	// Returned with SuccessWithWarning when a search hit the row limit.
	codeResultsTruncated = "11002"

	maxResponseBytes = 4 << 20
)

type Credentials struct {
	User      string
	Password  string
	Signature string
}

// APIError is an ACK=Failure answer. The job retries it on the next cycle.
type APIError struct {
	Method  string
	Ack     string
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nvp %s: ack %s: [%s] %s", e.Method, e.Ack, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return model.ErrTransient }

type client struct {
	httpClient *http.Client
	url        string
	creds      Credentials
	timeout    time.Duration
	pageSize   int
}

func NewClient(httpClient *http.Client, url string, creds Credentials, timeout time.Duration) *client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}
	return &client{
		httpClient: httpClient,
		url:        url,
		creds:      creds,
		timeout:    timeout,
		pageSize:   DefaultPageSize,
	}
}

// Call performs one NVP request and returns the decoded response.
func (c *client) Call(ctx context.Context, method string, params url.Values) (url.Values, error) {
	const op = "client.nvp.Call"

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	form := url.Values{}
	for k, v := range params {
		form[k] = v
	}
	form.Set("USER", c.creds.User)
	form.Set("PWD", c.creds.Password)
	form.Set("SIGNATURE", c.creds.Signature)
	form.Set("VERSION", apiVersion)
	form.Set("METHOD", method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w: %w", op, method, model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%s: %s: %w: status %d", op, method, model.ErrTransient, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s: status %d", op, method, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w: %w", op, method, model.ErrTransient, err)
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w: %w", op, method, model.ErrMalformedRecord, err)
	}

	switch ack := values.Get("ACK"); ack {
	case ackSuccess, ackSuccessWithWarning:
		return values, nil
	default:
		return nil, fmt.Errorf("%s: %w", op, &APIError{
			Method:  method,
			Ack:     ack,
			Code:    values.Get("L_ERRORCODE0"),
			Message: values.Get("L_LONGMESSAGE0"),
		})
	}
}

// Search lists every transaction since the given time. TransactionSearch has no
// offset parameter: results come newest first, so while a page is full the next
// request ends at the oldest timestamp seen. Rows repeated across the boundary
// are dropped by transaction id.
func (c *client) Search(ctx context.Context, since time.Time) (model.SearchResult, error) {
	const op = "client.nvp.Search"

	var (
		page    model.SearchResult
		seen    = make(map[string]struct{})
		endDate time.Time
	)

	for {
		params := url.Values{"STARTDATE": {convnvp.FormatTimestamp(since)}}
		if !endDate.IsZero() {
			params.Set("ENDDATE", convnvp.FormatTimestamp(endDate))
		}

		values, err := c.Call(ctx, methodTransactionSearch, params)
		if err != nil {
			return model.SearchResult{}, fmt.Errorf("%s: %w", op, err)
		}

		rows := convnvp.ParseFlatRecords(values, convnvp.ListMarker)
		summaries, malformed := convnvp.SummariesFromValues(values)
		page.Malformed = append(page.Malformed, malformed...)

		oldest := endDate
		for _, s := range summaries {
			if !s.Timestamp.IsZero() && (oldest.IsZero() || s.Timestamp.Before(oldest)) {
				oldest = s.Timestamp
			}
			if _, ok := seen[s.TransactionID]; ok {
				continue
			}
			seen[s.TransactionID] = struct{}{}
			page.Summaries = append(page.Summaries, s)
		}

		if !c.truncated(values, len(rows)) {
			return page, nil
		}
		if oldest.IsZero() || (!endDate.IsZero() && !oldest.Before(endDate)) {
			page.Stalled = true
			return page, nil
		}
		endDate = oldest

		if err := ctx.Err(); err != nil {
			return model.SearchResult{}, fmt.Errorf("%s: %w", op, err)
		}
	}
}

func (c *client) truncated(values url.Values, rows int) bool {
	if rows >= c.pageSize {
		return true
	}
	return values.Get("ACK") == ackSuccessWithWarning && values.Get("L_ERRORCODE0") == codeResultsTruncated
}

// Details fetches one transaction.
func (c *client) Details(ctx context.Context, txnID string) (model.TransactionDetail, error) {
	const op = "client.nvp.Details"

	values, err := c.Call(ctx, methodGetTransactionDetails, url.Values{"TRANSACTIONID": {txnID}})
	if err != nil {
		return model.TransactionDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	d, err := convnvp.DetailFromValues(values)
	if err != nil {
		return model.TransactionDetail{}, fmt.Errorf("%s: %w", op, err)
	}
	if d.TransactionID != txnID {
		return model.TransactionDetail{}, fmt.Errorf("%s: %w: asked for %s, got %s",
			op, model.ErrMalformedRecord, txnID, d.TransactionID)
	}

	return d, nil
}

func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
