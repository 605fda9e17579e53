package ipnclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/csytan/triplecrownforheart/internal/model"
)

const (
	DefaultURL = "https://ipnpb.paypal.com/cgi-bin/webscr"

	postbackPrefix = "cmd=_notify-validate&"
	tokenVerified  = "VERIFIED"
	tokenInvalid   = "INVALID"

	maxResponseBytes = 1 << 10
)

type verifier struct {
	httpClient *http.Client
	url        string
	timeout    time.Duration
}

func NewVerifier(httpClient *http.Client, url string, timeout time.Duration) *verifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}
	return &verifier{httpClient: httpClient, url: url, timeout: timeout}
}

// Verify posts the notification back to the processor exactly as received and
// returns a payload only when the processor answers VERIFIED. Every other
// outcome is ErrVerificationRejected.
func (v *verifier) Verify(ctx context.Context, raw model.RawNotification) (model.VerifiedPayload, error) {
	const op = "client.ipn.Verify"

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	body := make([]byte, 0, len(postbackPrefix)+len(raw.Body))
	body = append(body, postbackPrefix...)
	body = append(body, raw.Body...)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(body))
	if err != nil {
		return model.VerifiedPayload{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "triplecrown-ipn-verifier")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return model.VerifiedPayload{}, fmt.Errorf("%s: %w: %w: %w", op, model.ErrVerificationRejected, model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.VerifiedPayload{}, fmt.Errorf("%s: %w: postback status %d",
			op, model.ErrVerificationRejected, resp.StatusCode)
	}

	token, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.VerifiedPayload{}, fmt.Errorf("%s: %w: %w: %w", op, model.ErrVerificationRejected, model.ErrTransient, err)
	}

	// The token must be the entire body, byte for byte.
	switch string(token) {
	case tokenVerified:
		return model.NewVerifiedPayload(raw), nil
	case tokenInvalid:
		return model.VerifiedPayload{}, fmt.Errorf("%s: %w: processor answered %s", op, model.ErrVerificationRejected, tokenInvalid)
	default:
		return model.VerifiedPayload{}, fmt.Errorf("%s: %w: unexpected postback answer", op, model.ErrVerificationRejected)
	}
}
