package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dodopayments/dodopayments-go"
	"github.com/dodopayments/dodopayments-go/option"
	"github.com/google/uuid"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
)

const (
	defaultDodoBaseURL = "https://test.dodopayments.com"
	dodoMaxRetries     = 2
)

// DodoConfig configures the Dodo Payments integration.
type DodoConfig struct {
	APIKey        string
	WebhookSecret string
	BaseURL       string
	HTTPClient    *http.Client
}

// DodoProvider integrates Dodo Payments, which signs webhooks with Standard Webhooks.
type DodoProvider struct {
	client  *dodopayments.Client
	webhook *standardwebhooks.Webhook
}

// NewDodoProvider validates the webhook secret and builds the provider.
func NewDodoProvider(cfg DodoConfig) (*DodoProvider, error) {
	wh, err := newStandardWebhook(cfg.WebhookSecret)
	if err != nil {
		return nil, err
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultDodoBaseURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid dodo base url: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	client := dodopayments.NewClient(
		option.WithBearerToken(cfg.APIKey),
		option.WithBaseURL(base+"/"),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(dodoMaxRetries),
	)
	return &DodoProvider{client: client, webhook: wh}, nil
}

func (p *DodoProvider) Name() string { return ProviderDodo }

func (p *DodoProvider) ClaimPolicy() ClaimPolicy { return ClaimCommitted }

type dodoCustomer struct {
	CustomerID string `json:"customer_id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
}

type dodoSubscription struct {
	SubscriptionID          string            `json:"subscription_id"`
	ProductID               string            `json:"product_id"`
	Status                  string            `json:"status"`
	Customer                dodoCustomer      `json:"customer"`
	Metadata                map[string]string `json:"metadata"`
	PreviousBillingDate     *time.Time        `json:"previous_billing_date"`
	NextBillingDate         *time.Time        `json:"next_billing_date"`
	PeriodEndsAt            *time.Time        `json:"period_ends_at"`
	CancelAtNextBillingDate bool              `json:"cancel_at_next_billing_date"`
}

func (s dodoSubscription) periodEnd() *time.Time {
	if s.NextBillingDate != nil {
		return s.NextBillingDate
	}
	return s.PeriodEndsAt
}

type dodoWebhook struct {
	Type      string           `json:"type"`
	Timestamp *time.Time       `json:"timestamp"`
	Data      dodoSubscription `json:"data"`
}

var dodoActions = map[string]Action{
	"subscription.active":    ActionActivate,
	"subscription.renewed":   ActionActivate,
	"subscription.on_hold":   ActionPastDue,
	"subscription.failed":    ActionPastDue,
	"subscription.cancelled": ActionDeactivate,
	"subscription.expired":   ActionDeactivate,
}

// ParseWebhook verifies the Standard Webhooks headers and normalizes subscription events.
func (p *DodoProvider) ParseWebhook(header http.Header, body []byte) (Event, error) {
	id, sent, err := verifyStandardWebhook(p.webhook, header, body)
	if err != nil {
		return Event{}, err
	}

	var payload dodoWebhook
	if err := json.Unmarshal(body, &payload); err != nil {
		return Event{}, invalidPayload(err)
	}

	ev := Event{
		ID:             id,
		Type:           payload.Type,
		OccurredAt:     sent,
		Payload:        body,
		Action:         dodoActions[payload.Type],
		CustomerID:     payload.Data.Customer.CustomerID,
		CustomerEmail:  strings.ToLower(strings.TrimSpace(payload.Data.Customer.Email)),
		SubscriptionID: payload.Data.SubscriptionID,
		ProductID:      payload.Data.ProductID,
		PeriodStart:    payload.Data.PreviousBillingDate,
		PeriodEnd:      payload.Data.periodEnd(),
	}
	if payload.Timestamp != nil {
		ev.OccurredAt = payload.Timestamp.UTC()
	}
	if ref, err := uuid.Parse(payload.Data.Metadata["internal_tenant_id"]); err == nil {
		ev.TenantRef = &ref
	}
	return ev, nil
}

func (p *DodoProvider) SubscriptionDetails(ctx context.Context, subscriptionID string) (*Subscription, error) {
	if strings.TrimSpace(subscriptionID) == "" {
		return nil, nil
	}
	sub, err := p.client.Subscriptions.Get(ctx, subscriptionID)
	if err != nil {
		var apiErr *dodopayments.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("dodo get subscription %s: %w", subscriptionID, err)
	}
	return &Subscription{
		ID:                sub.SubscriptionID,
		CustomerID:        sub.Customer.CustomerID,
		Status:            string(sub.Status),
		ProductID:         sub.ProductID,
		CancelAtPeriodEnd: sub.CancelAtNextBillingDate,
		PeriodStart:       nonZeroTime(sub.PreviousBillingDate),
		PeriodEnd:         nonZeroTime(sub.NextBillingDate),
	}, nil
}

// dodoCheckoutRequest is the body of POST /checkouts. Metadata carries the ids the webhook handler resolves.
type dodoCheckoutRequest struct {
	ProductCart []dodoCartItem    `json:"product_cart"`
	Customer    dodoCustomer      `json:"customer"`
	ReturnURL   string            `json:"return_url"`
	Metadata    map[string]string `json:"metadata"`
}

type dodoCartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type dodoCheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

func (p *DodoProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	if req.ProductID == "" {
		return CheckoutSession{}, fmt.Errorf("dodo checkout requires a product id")
	}
	name, _, _ := strings.Cut(req.Email, "@")
	body := dodoCheckoutRequest{
		ProductCart: []dodoCartItem{{ProductID: req.ProductID, Quantity: 1}},
		Customer:    dodoCustomer{Email: req.Email, Name: name},
		ReturnURL:   req.SuccessURL,
		Metadata: map[string]string{
			"internal_tenant_id": req.TenantID.String(),
			"internal_user_id":   req.UserID.String(),
		},
	}
	var out dodoCheckoutResponse
	if err := p.client.Post(ctx, "checkouts", body, &out); err != nil {
		return CheckoutSession{}, ErrProviderFailure.WithMessage("could not create a checkout session with the payment provider: %v", err)
	}
	return CheckoutSession{ID: out.SessionID, URL: out.CheckoutURL}, nil
}

func (p *DodoProvider) CreateCustomerPortalSession(context.Context, string, string) (string, error) {
	return "", ErrPortalUnsupported
}

func nonZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}
