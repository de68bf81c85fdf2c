package billing

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

// Standard Webhooks headers.
const (
	WebhookIDHeader        = "webhook-id"
	WebhookTimestampHeader = "webhook-timestamp"
	WebhookSignatureHeader = "webhook-signature"
)

// newStandardWebhook decodes a "whsec_" prefixed base64 secret.
func newStandardWebhook(secret string) (*standardwebhooks.Webhook, error) {
	secret = strings.TrimSpace(secret)
	if strings.TrimPrefix(secret, "whsec_") == "" {
		return nil, fmt.Errorf("webhook secret is empty")
	}
	wh, err := standardwebhooks.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("decode webhook secret: %w", err)
	}
	return wh, nil
}

// verifyStandardWebhook checks the id/timestamp/signature triple within the library's five minute tolerance
// and returns the message id and send time.
func verifyStandardWebhook(wh *standardwebhooks.Webhook, header http.Header, body []byte) (string, time.Time, error) {
	if err := wh.Verify(body, header); err != nil {
		switch {
		case errors.Is(err, standardwebhooks.ErrRequiredHeaders):
			return "", time.Time{}, ErrSignature.WithMessage("missing webhook headers")
		case errors.Is(err, standardwebhooks.ErrMessageTooOld), errors.Is(err, standardwebhooks.ErrMessageTooNew):
			return "", time.Time{}, ErrSignature.WithMessage("webhook timestamp outside tolerance")
		default:
			return "", time.Time{}, ErrSignature
		}
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(header.Get(WebhookTimestampHeader)), 10, 64)
	if err != nil {
		return "", time.Time{}, ErrSignature.WithMessage("invalid webhook timestamp")
	}
	return strings.TrimSpace(header.Get(WebhookIDHeader)), time.Unix(ts, 0).UTC(), nil
}
