package billing

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
)

// Provider names stored alongside webhook events and checkout sessions.
const (
	ProviderStripe = "stripe"
	ProviderDodo   = "dodo"
)

var (
	ErrSignature         = apperr.WithCode(apperr.KindSignatureInvalid, "WEBHOOK_SIGNATURE_INVALID", "webhook signature verification failed")
	ErrPortalUnsupported = apperr.New(apperr.KindNotImplemented, "customer portal is not supported by the payment provider")
	ErrProviderFailure   = apperr.New(apperr.KindUnavailable, "payment provider request failed")
)

// ClaimPolicy controls when the webhook dedup row becomes visible to concurrent deliveries.
type ClaimPolicy int

const (
	// ClaimInTransaction inserts the dedup row in the processing transaction; a rollback removes it.
	ClaimInTransaction ClaimPolicy = iota
	// ClaimCommitted commits the dedup row in its own transaction before processing begins.
	ClaimCommitted
)

// Action is the subscription transition an event asks for.
type Action int

const (
	ActionIgnore Action = iota
	ActionActivate
	ActionTrialing
	ActionPastDue
	ActionCancel
	ActionDeactivate
)

func (a Action) String() string {
	switch a {
	case ActionActivate:
		return "activate"
	case ActionTrialing:
		return "trialing"
	case ActionPastDue:
		return "past_due"
	case ActionCancel:
		return "cancel"
	case ActionDeactivate:
		return "deactivate"
	default:
		return "ignore"
	}
}

// Event is a verified provider webhook normalized into the fields the processor needs.
type Event struct {
	ID         string
	Type       string
	OccurredAt time.Time
	Payload    []byte
	Action     Action

	// Tenant resolution hints, tried in order.
	TenantRef     *uuid.UUID
	CustomerID    string
	CustomerEmail string

	SubscriptionID    string
	CheckoutSessionID string
	PriceID           string
	ProductID         string
	PeriodStart       *time.Time
	PeriodEnd         *time.Time

	// FetchSubscription asks the processor to load the subscription from the provider before applying.
	FetchSubscription bool
}

// Subscription is the live provider view of a subscription.
type Subscription struct {
	ID                string     `json:"id"`
	CustomerID        string     `json:"customer_id,omitempty"`
	Status            string     `json:"status"`
	PriceID           string     `json:"price_id,omitempty"`
	ProductID         string     `json:"product_id,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
	PeriodStart       *time.Time `json:"current_period_start,omitempty"`
	PeriodEnd         *time.Time `json:"current_period_end,omitempty"`
}

// CheckoutRequest carries what a provider needs to open a hosted checkout.
type CheckoutRequest struct {
	TenantID   uuid.UUID
	UserID     uuid.UUID
	Email      string
	PriceID    string
	ProductID  string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the provider's hosted checkout.
type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"checkout_url"`
}

// Provider is a payment gateway integration.
type Provider interface {
	Name() string
	ClaimPolicy() ClaimPolicy
	// ParseWebhook verifies the signature and normalizes the event. Failures wrap ErrSignature.
	ParseWebhook(header http.Header, body []byte) (Event, error)
	// SubscriptionDetails returns nil without error when the provider does not know the subscription.
	SubscriptionDetails(ctx context.Context, subscriptionID string) (*Subscription, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
	CreateCustomerPortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

func unixTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
