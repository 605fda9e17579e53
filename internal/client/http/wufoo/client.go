package wufooclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/csytan/triplecrownforheart/internal/model"
)

const (
	pageSize = 100
	// Wufoo ignores the basic auth password; the API key is the user name.
	authPassword = "footastic"

	dateLayout = "2006-01-02 15:04:05"

	maxResponseBytes = 8 << 20
)

// Fields maps form field ids to rider attributes.
type Fields struct {
	FirstName string
	LastName  string
	Email     string
}

var DefaultFields = Fields{FirstName: "Field5", LastName: "Field6", Email: "Field7"}

type client struct {
	httpClient *http.Client
	baseURL    string
	formID     string
	apiKey     string
	fields     Fields
	timeout    time.Duration
}

// NewClient builds a client for one form. baseURL is
// https://<subdomain>.wufoo.com in production.
func NewClient(httpClient *http.Client, baseURL, formID, apiKey string, fields Fields, timeout time.Duration) *client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		formID:     formID,
		apiKey:     apiKey,
		fields:     fields,
		timeout:    timeout,
	}
}

type entriesResponse struct {
	Entries []map[string]string `json:"Entries"`
}

// Entries returns every form entry, paging until a short page.
func (c *client) Entries(ctx context.Context) ([]model.RegistrationEntry, error) {
	const op = "client.wufoo.Entries"

	var out []model.RegistrationEntry
	for start := 0; ; start += pageSize {
		page, err := c.page(ctx, start)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for _, e := range page {
			out = append(out, c.toEntry(e))
		}

		if len(page) < pageSize {
			return out, nil
		}
	}
}

func (c *client) page(ctx context.Context, start int) ([]map[string]string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	q := url.Values{
		"pageStart": {strconv.Itoa(start)},
		"pageSize":  {strconv.Itoa(pageSize)},
	}
	u := fmt.Sprintf("%s/api/v3/forms/%s/entries.json?%s", c.baseURL, url.PathEscape(c.formID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.apiKey, authPassword)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", model.ErrTransient, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var body entriesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedRecord, err)
	}

	return body.Entries, nil
}

func (c *client) toEntry(e map[string]string) model.RegistrationEntry {
	entry := model.RegistrationEntry{
		EntryID:   e["EntryId"],
		FirstName: Capitalize(e[c.fields.FirstName]),
		LastName:  Capitalize(e[c.fields.LastName]),
		Email:     strings.TrimSpace(e[c.fields.Email]),
	}
	if ts, err := time.Parse(dateLayout, e["DateCreated"]); err == nil {
		entry.CreatedAt = ts
	}
	return entry
}

// Capitalize trims s and upper-cases its first letter, lower-casing the rest.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
