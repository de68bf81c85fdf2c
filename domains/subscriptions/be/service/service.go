package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/domains/subscriptions/be/repo"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/billing"
	"github.com/zenGate-Global/tenantgate/platform/go/entitlements"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// Domain sentinel errors.
var (
	ErrNoPlan            = apperr.WithCode(apperr.KindNotFound, "NO_PLAN", "No active subscription plan found for this tenant.")
	ErrPlanNotFound      = apperr.WithCode(apperr.KindNotFound, "PLAN_NOT_FOUND", "Plan not found.")
	ErrPlanNotConfigured = apperr.New(apperr.KindBadRequest, "plan is not configured for the payment provider")
	ErrNotCustomer       = apperr.New(apperr.KindBadRequest, "Tenant is not a paying customer with the payment provider.")
	ErrNoGateway         = apperr.New(apperr.KindUnavailable, "no payment gateway is configured")
	ErrInvalidSession    = apperr.New(apperr.KindUnavailable, "payment provider did not return a valid session")
)

// Entitlement is a plan entitlement as presented to clients.
type Entitlement struct {
	FeatureSlug string
	Type        string
	Value       int64
}

// Plan is the public view of a plan.
type Plan struct {
	ID                uuid.UUID
	Name              string
	Description       *string
	IsActive          bool
	ExternalProductID *string
	ExternalPriceID   *string
	Entitlements      []Entitlement
}

// Details combines the stored subscription with live provider data and metered usage.
type Details struct {
	Plan                  Plan
	Status                string
	CurrentPeriodStartsAt *time.Time
	CurrentPeriodEndsAt   *time.Time
	Provider              *billing.Subscription
	Usage                 []entitlements.MeterUsage
}

// CheckoutInput starts a hosted checkout for a plan.
type CheckoutInput struct {
	PlanID     uuid.UUID
	SuccessURL string
	CancelURL  string
}

// Service defines the business operations for plans and subscriptions.
type Service interface {
	ListPlans(ctx context.Context) ([]Plan, error)
	Mine(ctx context.Context, id auth.Identity) (Details, error)
	Checkout(ctx context.Context, id auth.Identity, input CheckoutInput) (billing.CheckoutSession, error)
	PortalSession(ctx context.Context, id auth.Identity, returnURL string) (string, error)
}

// Admins builds the tenant-admin check.
type Admins interface {
	RequireTenantAdmin() access.Check
}

// UsageReporter reports metered usage for the current billing window.
type UsageReporter interface {
	Usage(ctx context.Context, s *persistence.Session, t persistence.Tenant, plan persistence.Plan) ([]entitlements.MeterUsage, error)
}

// Config wires the service collaborators. Gateway may be nil when no payment provider is configured.
type Config struct {
	Runner  persistence.Runner
	Repo    repo.Repository
	Admins  Admins
	Usage   UsageReporter
	Gateway billing.Provider
	Logger  *zap.Logger
}

type service struct {
	runner  persistence.Runner
	repo    repo.Repository
	admins  Admins
	usage   UsageReporter
	gateway billing.Provider
	logger  *zap.Logger
}

// New constructs a subscriptions Service instance.
func New(cfg Config) Service {
	if cfg.Runner == nil || cfg.Repo == nil || cfg.Admins == nil || cfg.Usage == nil {
		panic("subscriptions service requires runner, repository, admin guard and usage reporter")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &service{
		runner:  cfg.Runner,
		repo:    cfg.Repo,
		admins:  cfg.Admins,
		usage:   cfg.Usage,
		gateway: cfg.Gateway,
		logger:  cfg.Logger,
	}
}

// ListPlans returns the active plans. Plans are global, so the anonymous scope is enough.
func (s *service) ListPlans(ctx context.Context) ([]Plan, error) {
	var out []Plan
	err := s.runner.WithScope(ctx, tenant.Scope{}, func(sess *persistence.Session) error {
		plans, err := s.repo.ListPlans(ctx, sess, true)
		if err != nil {
			return err
		}
		out = make([]Plan, 0, len(plans))
		for _, p := range plans {
			out = append(out, mapPlan(p))
		}
		return nil
	})
	return out, err
}

// Mine loads the tenant subscription and usage in one transaction, then asks the provider for live data
// outside of it. Provider failures leave the provider section empty.
func (s *service) Mine(ctx context.Context, id auth.Identity) (Details, error) {
	var (
		out            Details
		subscriptionID *string
	)
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireTenantMember(), s.admins.RequireTenantAdmin()); err != nil {
			return err
		}
		t, err := s.repo.GetTenant(ctx, sess, id.Tenant())
		if err != nil {
			if errors.Is(err, persistence.ErrTenantNotFound) {
				return ErrNoPlan
			}
			return err
		}
		if t.Billing.PlanID == nil {
			return ErrNoPlan
		}
		plan, err := s.repo.GetPlan(ctx, sess, *t.Billing.PlanID)
		if err != nil {
			if errors.Is(err, persistence.ErrPlanNotFound) {
				return ErrNoPlan
			}
			return err
		}
		usage, err := s.usage.Usage(ctx, sess, t, plan)
		if err != nil {
			return err
		}

		out = Details{
			Plan:                  mapPlan(plan),
			Status:                t.Billing.Status,
			CurrentPeriodStartsAt: t.Billing.CurrentPeriodStartsAt,
			CurrentPeriodEndsAt:   t.Billing.CurrentPeriodEndsAt,
			Usage:                 usage,
		}
		subscriptionID = t.Billing.ExternalSubscriptionID
		return nil
	})
	if err != nil {
		return Details{}, err
	}

	if s.gateway != nil && subscriptionID != nil && *subscriptionID != "" {
		sub, err := s.gateway.SubscriptionDetails(ctx, *subscriptionID)
		if err != nil {
			s.logger.Warn("could not load subscription from payment provider",
				zap.String("provider", s.gateway.Name()),
				zap.String("subscription_id", *subscriptionID),
				zap.Error(err),
			)
		}
		out.Provider = sub
	}
	return out, nil
}

// Checkout opens a hosted checkout and records it once per provider session id.
func (s *service) Checkout(ctx context.Context, id auth.Identity, input CheckoutInput) (billing.CheckoutSession, error) {
	if s.gateway == nil {
		return billing.CheckoutSession{}, ErrNoGateway
	}

	var plan persistence.Plan
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireTenantMember()); err != nil {
			return err
		}
		p, err := s.repo.GetPlan(ctx, sess, input.PlanID)
		if err != nil {
			if errors.Is(err, persistence.ErrPlanNotFound) {
				return ErrPlanNotFound
			}
			return err
		}
		plan = p
		return nil
	})
	if err != nil {
		return billing.CheckoutSession{}, err
	}

	req := billing.CheckoutRequest{
		TenantID:   id.Tenant(),
		UserID:     id.UserID,
		Email:      id.Email,
		SuccessURL: input.SuccessURL,
		CancelURL:  input.CancelURL,
	}
	switch s.gateway.Name() {
	case billing.ProviderStripe:
		if plan.ExternalPriceID == nil || *plan.ExternalPriceID == "" {
			return billing.CheckoutSession{}, ErrPlanNotConfigured.WithMessage("Plan is not configured for Stripe (missing price ID).")
		}
		req.PriceID = *plan.ExternalPriceID
	default:
		if plan.ExternalProductID == nil || *plan.ExternalProductID == "" {
			return billing.CheckoutSession{}, ErrPlanNotConfigured.WithMessage("Plan is not configured for %s (missing product ID).", s.gateway.Name())
		}
		req.ProductID = *plan.ExternalProductID
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, req)
	if err != nil {
		return billing.CheckoutSession{}, err
	}
	if session.ID == "" || session.URL == "" {
		return billing.CheckoutSession{}, ErrInvalidSession
	}

	err = s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		created, err := s.repo.RecordCheckout(ctx, sess, persistence.CheckoutSession{
			ID:       session.ID,
			Provider: s.gateway.Name(),
			TenantID: id.Tenant(),
			PlanID:   plan.ID,
			Status:   billing.CheckoutPending,
		})
		if err != nil {
			return err
		}
		if !created {
			s.logger.Info("checkout session already recorded", zap.String("session_id", session.ID))
		}
		return nil
	})
	if err != nil {
		return billing.CheckoutSession{}, err
	}
	return session, nil
}

func (s *service) PortalSession(ctx context.Context, id auth.Identity, returnURL string) (string, error) {
	if s.gateway == nil {
		return "", ErrNoGateway
	}

	var customerID string
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, access.RequireTenantMember()); err != nil {
			return err
		}
		t, err := s.repo.GetTenant(ctx, sess, id.Tenant())
		if err != nil {
			if errors.Is(err, persistence.ErrTenantNotFound) {
				return apperr.New(apperr.KindNotFound, "Tenant not found.")
			}
			return err
		}
		if t.Billing.ExternalCustomerID != nil {
			customerID = *t.Billing.ExternalCustomerID
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if customerID == "" && s.gateway.Name() == billing.ProviderStripe {
		return "", ErrNotCustomer
	}

	return s.gateway.CreateCustomerPortalSession(ctx, customerID, returnURL)
}

func mapPlan(p persistence.Plan) Plan {
	out := Plan{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		IsActive:          p.IsActive,
		ExternalProductID: p.ExternalProductID,
		ExternalPriceID:   p.ExternalPriceID,
		Entitlements:      make([]Entitlement, 0, len(p.Entitlements)),
	}
	for _, e := range p.Entitlements {
		out.Entitlements = append(out.Entitlements, Entitlement(e))
	}
	return out
}
