package mailgunclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/csytan/triplecrownforheart/internal/model"
)

const DefaultBaseURL = "https://api.mailgun.net"

type client struct {
	httpClient *http.Client
	baseURL    string
	domain     string
	apiKey     string
	from       string
	timeout    time.Duration
}

func NewClient(httpClient *http.Client, baseURL, domain, apiKey, from string, timeout time.Duration) *client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		domain:     domain,
		apiKey:     apiKey,
		from:       from,
		timeout:    timeout,
	}
}

func (c *client) Send(ctx context.Context, msg model.Message) error {
	const op = "client.mailgun.Send"

	if msg.To == "" {
		return fmt.Errorf("%s: empty recipient", op)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	form := url.Values{
		"from":    {c.from},
		"to":      {msg.To},
		"subject": {msg.Subject},
		"text":    {msg.Body},
	}

	u := fmt.Sprintf("%s/v3/%s/messages", c.baseURL, url.PathEscape(c.domain))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, model.ErrTransient, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	switch {
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s: %w: status %d", op, model.ErrTransient, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s: status %d", op, resp.StatusCode)
	}

	return nil
}
