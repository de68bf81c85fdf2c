package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/logging"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Outcome describes how a delivery was handled.
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeStale     Outcome = "stale"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeError     Outcome = "error"
)

// Result is acknowledged to the provider with a 2xx status.
type Result struct {
	Status  Outcome `json:"status"`
	Detail  string  `json:"detail,omitempty"`
	EventID string  `json:"event_id,omitempty"`
}

// Checkout session statuses.
const (
	CheckoutPending   = "PENDING"
	CheckoutCompleted = "COMPLETED"
)

// EventLedger is the webhook dedup store.
type EventLedger interface {
	Claim(ctx context.Context, s *persistence.Session, provider, id, eventType string, payload []byte) (bool, error)
	Lock(ctx context.Context, s *persistence.Session, provider, id string) (persistence.WebhookEvent, error)
	MarkProcessed(ctx context.Context, s *persistence.Session, provider, id string, at time.Time) error
}

// TenantBilling reads and writes the billing state of tenants.
type TenantBilling interface {
	GetForUpdate(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error)
	FindByExternalCustomerForUpdate(ctx context.Context, s *persistence.Session, customerID string) (persistence.Tenant, error)
	UpdateBilling(ctx context.Context, s *persistence.Session, id uuid.UUID, state persistence.BillingState) (persistence.Tenant, error)
}

// UserDirectory resolves tenants through a member's email.
type UserDirectory interface {
	FindByEmail(ctx context.Context, s *persistence.Session, email string) (persistence.User, error)
}

// PlanCatalog maps provider prices and products onto plans.
type PlanCatalog interface {
	FindByExternalPrice(ctx context.Context, s *persistence.Session, priceID string) (persistence.Plan, error)
	FindByExternalProduct(ctx context.Context, s *persistence.Session, productID string) (persistence.Plan, error)
}

// CheckoutTracker updates recorded checkout sessions.
type CheckoutTracker interface {
	UpdateStatus(ctx context.Context, s *persistence.Session, id, status string) error
}

// ProcessorConfig wires a Processor.
type ProcessorConfig struct {
	Runner    persistence.Runner
	Events    EventLedger
	Tenants   TenantBilling
	Users     UserDirectory
	Plans     PlanCatalog
	Checkouts CheckoutTracker
	Logger    *zap.Logger
	Now       func() time.Time
}

// Processor applies verified provider webhooks to tenant subscriptions exactly once.
type Processor struct {
	runner    persistence.Runner
	events    EventLedger
	tenants   TenantBilling
	users     UserDirectory
	plans     PlanCatalog
	checkouts CheckoutTracker
	logger    *zap.Logger
	now       func() time.Time
}

// NewProcessor builds a Processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	if cfg.Runner == nil || cfg.Events == nil || cfg.Tenants == nil || cfg.Users == nil || cfg.Plans == nil || cfg.Checkouts == nil {
		panic("billing.NewProcessor requires runner, events, tenants, users, plans and checkouts")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Processor{
		runner:    cfg.Runner,
		events:    cfg.Events,
		tenants:   cfg.Tenants,
		users:     cfg.Users,
		plans:     cfg.Plans,
		checkouts: cfg.Checkouts,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
}

// business marks a permanent data problem; the delivery is acknowledged and not retried.
func business(format string, args ...any) error {
	return apperr.Newf(apperr.KindWebhookBusiness, format, args...)
}

// Handle verifies and applies one delivery. Signature failures return a WEBHOOK_SIGNATURE_INVALID error
// before any state is touched, business failures are rolled back and reported in the Result, and any other
// failure is rolled back and returned as WEBHOOK_SYSTEM_ERROR so the provider retries.
func (p *Processor) Handle(ctx context.Context, provider Provider, header http.Header, body []byte) (Result, error) {
	logger := logging.FromContextOr(ctx, p.logger).With(zap.String("provider", provider.Name()))

	ev, err := provider.ParseWebhook(header, body)
	if err != nil {
		logger.Warn("webhook rejected", zap.Error(err))
		return Result{}, err
	}
	logger = logger.With(zap.String("event_id", ev.ID), zap.String("event_type", ev.Type))

	if provider.ClaimPolicy() == ClaimCommitted {
		if err := p.runner.WithSystem(ctx, func(s *persistence.Session) error {
			_, err := p.events.Claim(ctx, s, provider.Name(), ev.ID, ev.Type, ev.Payload)
			return err
		}); err != nil {
			logger.Error("webhook claim failed", zap.Error(err))
			return Result{}, apperr.Wrap(apperr.KindWebhookSystem, err, "webhook processing failed")
		}
	}

	var outcome Outcome
	err = p.runner.WithSystem(ctx, func(s *persistence.Session) error {
		if provider.ClaimPolicy() == ClaimInTransaction {
			if _, err := p.events.Claim(ctx, s, provider.Name(), ev.ID, ev.Type, ev.Payload); err != nil {
				return err
			}
		}
		row, err := p.events.Lock(ctx, s, provider.Name(), ev.ID)
		if err != nil {
			return err
		}
		if row.ProcessedSuccessfully {
			outcome = OutcomeDuplicate
			return nil
		}

		outcome, err = p.apply(ctx, s, provider, ev)
		if err != nil {
			return err
		}
		return p.events.MarkProcessed(ctx, s, provider.Name(), ev.ID, p.now())
	})

	switch {
	case err == nil:
		logger.Info("webhook handled", zap.String("outcome", string(outcome)))
		return Result{Status: outcome, EventID: ev.ID}, nil
	case apperr.IsKind(err, apperr.KindWebhookBusiness):
		logger.Error("webhook not applied", zap.String("outcome", string(OutcomeError)), zap.Error(err))
		return Result{Status: OutcomeError, Detail: err.Error(), EventID: ev.ID}, nil
	default:
		logger.Error("webhook processing failed", zap.Error(err))
		return Result{}, apperr.Wrap(apperr.KindWebhookSystem, err, "webhook processing failed")
	}
}

func (p *Processor) apply(ctx context.Context, s *persistence.Session, provider Provider, ev Event) (Outcome, error) {
	if ev.Action == ActionIgnore {
		return OutcomeIgnored, nil
	}

	t, err := p.resolveTenant(ctx, s, ev)
	if err != nil {
		return "", err
	}

	if last := t.Billing.LastEventAt; last != nil && ev.OccurredAt.Before(*last) {
		return OutcomeStale, nil
	}

	if ev.FetchSubscription {
		sub, err := provider.SubscriptionDetails(ctx, ev.SubscriptionID)
		if err != nil {
			return "", err
		}
		if sub == nil {
			return "", business("subscription %q not found at provider", ev.SubscriptionID)
		}
		mergeSubscription(&ev, sub)
	}

	state := t.Billing
	switch ev.Action {
	case ActionActivate, ActionTrialing:
		plan, err := p.findPlan(ctx, s, ev)
		if err != nil {
			return "", err
		}
		state.PlanID = &plan.ID
		state.Status = persistence.SubscriptionActive
		if ev.Action == ActionTrialing {
			state.Status = persistence.SubscriptionTrialing
		}
		if ev.SubscriptionID != "" {
			state.ExternalSubscriptionID = &ev.SubscriptionID
		}
		if ev.CustomerID != "" {
			state.ExternalCustomerID = &ev.CustomerID
		}
		if ev.PeriodStart != nil {
			state.CurrentPeriodStartsAt = ev.PeriodStart
		}
		if ev.PeriodEnd != nil {
			state.CurrentPeriodEndsAt = ev.PeriodEnd
		}
	case ActionPastDue:
		state.Status = persistence.SubscriptionPastDue
	case ActionCancel:
		state.Status = persistence.SubscriptionCanceled
	case ActionDeactivate:
		state.Status = persistence.SubscriptionInactive
	}
	occurred := ev.OccurredAt
	state.LastEventAt = &occurred

	if _, err := p.tenants.UpdateBilling(ctx, s, t.ID, state); err != nil {
		return "", fmt.Errorf("update tenant billing: %w", err)
	}
	if ev.CheckoutSessionID != "" {
		if err := p.checkouts.UpdateStatus(ctx, s, ev.CheckoutSessionID, CheckoutCompleted); err != nil {
			return "", err
		}
	}
	return OutcomeProcessed, nil
}

func (p *Processor) resolveTenant(ctx context.Context, s *persistence.Session, ev Event) (persistence.Tenant, error) {
	var (
		t   persistence.Tenant
		err = persistence.ErrTenantNotFound
	)
	switch {
	case ev.TenantRef != nil:
		t, err = p.tenants.GetForUpdate(ctx, s, *ev.TenantRef)
	case ev.CustomerID != "" && ev.CheckoutSessionID == "":
		t, err = p.tenants.FindByExternalCustomerForUpdate(ctx, s, ev.CustomerID)
		if errors.Is(err, persistence.ErrTenantNotFound) && ev.CustomerEmail != "" {
			t, err = p.tenantByEmail(ctx, s, ev.CustomerEmail)
		}
	case ev.CustomerEmail != "":
		t, err = p.tenantByEmail(ctx, s, ev.CustomerEmail)
	}
	if errors.Is(err, persistence.ErrTenantNotFound) {
		return t, business("could not find tenant for event %s (%s)", ev.ID, ev.Type)
	}
	return t, err
}

func (p *Processor) tenantByEmail(ctx context.Context, s *persistence.Session, email string) (persistence.Tenant, error) {
	u, err := p.users.FindByEmail(ctx, s, email)
	if errors.Is(err, persistence.ErrUserNotFound) {
		return persistence.Tenant{}, persistence.ErrTenantNotFound
	}
	if err != nil {
		return persistence.Tenant{}, err
	}
	if u.TenantID == nil {
		return persistence.Tenant{}, persistence.ErrTenantNotFound
	}
	return p.tenants.GetForUpdate(ctx, s, *u.TenantID)
}

func (p *Processor) findPlan(ctx context.Context, s *persistence.Session, ev Event) (persistence.Plan, error) {
	var (
		plan persistence.Plan
		err  error
	)
	switch {
	case ev.PriceID != "":
		plan, err = p.plans.FindByExternalPrice(ctx, s, ev.PriceID)
	case ev.ProductID != "":
		plan, err = p.plans.FindByExternalProduct(ctx, s, ev.ProductID)
	default:
		return plan, business("event %s carries no price or product reference", ev.ID)
	}
	if errors.Is(err, persistence.ErrPlanNotFound) {
		return plan, business("no plan matches price %q / product %q", ev.PriceID, ev.ProductID)
	}
	return plan, err
}

func mergeSubscription(ev *Event, sub *Subscription) {
	if ev.PriceID == "" {
		ev.PriceID = sub.PriceID
	}
	if ev.ProductID == "" {
		ev.ProductID = sub.ProductID
	}
	if ev.CustomerID == "" {
		ev.CustomerID = sub.CustomerID
	}
	if sub.PeriodStart != nil {
		ev.PeriodStart = sub.PeriodStart
	}
	if sub.PeriodEnd != nil {
		ev.PeriodEnd = sub.PeriodEnd
	}
}
