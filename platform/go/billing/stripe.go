package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
)

// StripeSignatureHeader carries the timestamped signature list.
const StripeSignatureHeader = "Stripe-Signature"

const webhookTolerance = 5 * time.Minute

// stripeAPI is the subset of the Stripe client the provider calls.
type stripeAPI interface {
	GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	NewPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error)
}

type stripeClient struct {
	api *client.API
}

func (c stripeClient) GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	return c.api.Subscriptions.Get(id, params)
}

func (c stripeClient) NewCheckoutSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return c.api.CheckoutSessions.New(params)
}

func (c stripeClient) NewPortalSession(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
	return c.api.BillingPortalSessions.New(params)
}

// StripeProvider integrates Stripe subscriptions.
type StripeProvider struct {
	api           stripeAPI
	webhookSecret string
	now           func() time.Time
}

// NewStripeProvider builds a provider backed by the Stripe API.
func NewStripeProvider(apiKey, webhookSecret string) *StripeProvider {
	sc := &client.API{}
	sc.Init(apiKey, nil)
	return newStripeProvider(stripeClient{api: sc}, webhookSecret)
}

func newStripeProvider(api stripeAPI, webhookSecret string) *StripeProvider {
	return &StripeProvider{api: api, webhookSecret: webhookSecret, now: time.Now}
}

func (p *StripeProvider) Name() string { return ProviderStripe }

func (p *StripeProvider) ClaimPolicy() ClaimPolicy { return ClaimInTransaction }

// ParseWebhook verifies the Stripe-Signature header with a five minute tolerance.
func (p *StripeProvider) ParseWebhook(header http.Header, body []byte) (Event, error) {
	sig := header.Get(StripeSignatureHeader)
	if strings.TrimSpace(sig) == "" {
		return Event{}, ErrSignature.WithMessage("missing %s header", StripeSignatureHeader)
	}
	raw, err := webhook.ConstructEventWithOptions(body, sig, p.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                webhookTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrSignature, err)
	}

	ev := Event{
		ID:         raw.ID,
		Type:       string(raw.Type),
		OccurredAt: time.Unix(raw.Created, 0).UTC(),
		Payload:    body,
	}
	if raw.Data == nil {
		return ev, nil
	}

	switch {
	case ev.Type == "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(raw.Data.Raw, &cs); err != nil {
			return Event{}, invalidPayload(err)
		}
		if cs.Mode != stripe.CheckoutSessionModeSubscription {
			return ev, nil
		}
		ev.Action = ActionActivate
		ev.CheckoutSessionID = cs.ID
		ev.FetchSubscription = true
		if ref, err := uuid.Parse(cs.ClientReferenceID); err == nil {
			ev.TenantRef = &ref
		}
		if cs.Customer != nil {
			ev.CustomerID = cs.Customer.ID
		}
		if cs.Subscription != nil {
			ev.SubscriptionID = cs.Subscription.ID
		}

	case ev.Type == "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(raw.Data.Raw, &inv); err != nil {
			return Event{}, invalidPayload(err)
		}
		ev.Action = ActionPastDue
		if inv.Customer != nil {
			ev.CustomerID = inv.Customer.ID
		}

	case ev.Type == "customer.subscription.updated" || ev.Type == "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(raw.Data.Raw, &sub); err != nil {
			return Event{}, invalidPayload(err)
		}
		s := fromStripeSubscription(&sub)
		ev.Action = subscriptionAction(s)
		ev.SubscriptionID = s.ID
		ev.CustomerID = s.CustomerID
		ev.PriceID = s.PriceID
		ev.ProductID = s.ProductID
		ev.PeriodStart = s.PeriodStart
		ev.PeriodEnd = s.PeriodEnd
	}
	return ev, nil
}

func invalidPayload(err error) error {
	return apperr.Wrap(apperr.KindBadRequest, err, "invalid webhook payload")
}

func subscriptionAction(s Subscription) Action {
	if s.CancelAtPeriodEnd {
		return ActionCancel
	}
	switch stripe.SubscriptionStatus(s.Status) {
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusUnpaid:
		return ActionDeactivate
	case stripe.SubscriptionStatusTrialing:
		return ActionTrialing
	case stripe.SubscriptionStatusPastDue:
		return ActionPastDue
	case stripe.SubscriptionStatusActive:
		return ActionActivate
	default:
		return ActionIgnore
	}
}

func (p *StripeProvider) SubscriptionDetails(ctx context.Context, subscriptionID string) (*Subscription, error) {
	if strings.TrimSpace(subscriptionID) == "" {
		return nil, nil
	}
	sub, err := p.api.GetSubscription(ctx, subscriptionID)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && (serr.Code == stripe.ErrorCodeResourceMissing || serr.HTTPStatusCode == http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("retrieve stripe subscription %s: %w", subscriptionID, err)
	}
	s := fromStripeSubscription(sub)
	return &s, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error) {
	if req.PriceID == "" {
		return CheckoutSession{}, fmt.Errorf("stripe checkout requires a price id")
	}
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(req.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:              stripe.String(req.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:               stripe.String(req.CancelURL),
		ClientReferenceID:       stripe.String(req.TenantID.String()),
		PaymentMethodCollection: stripe.String("always"),
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx

	cs, err := p.api.NewCheckoutSession(params)
	if err != nil {
		return CheckoutSession{}, ErrProviderFailure.WithMessage("could not create a checkout session with stripe: %v", err)
	}
	return CheckoutSession{ID: cs.ID, URL: cs.URL}, nil
}

func (p *StripeProvider) CreateCustomerPortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	ps, err := p.api.NewPortalSession(params)
	if err != nil {
		return "", ErrProviderFailure.WithMessage("could not create a customer portal session with stripe: %v", err)
	}
	return ps.URL, nil
}

func fromStripeSubscription(sub *stripe.Subscription) Subscription {
	out := Subscription{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		PeriodStart:       unixTime(sub.CurrentPeriodStart),
		PeriodEnd:         unixTime(sub.CurrentPeriodEnd),
	}
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		price := sub.Items.Data[0].Price
		out.PriceID = price.ID
		if price.Product != nil {
			out.ProductID = price.Product.ID
		}
	}
	return out
}
