package entitlements

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Feature slugs with built-in semantics.
const (
	FeatureMaxUsers         = "max_users"
	FeatureMaxCustomObjects = "max_custom_objects"
	FeatureMaxAPIKeys       = "max_api_keys"
	FeatureRecords          = "records"
)

var (
	ErrNoSubscription  = apperr.WithCode(apperr.KindPaymentRequired, "PAYMENT_REQUIRED", "no active subscription found")
	ErrNotInPlan       = apperr.WithCode(apperr.KindPaymentRequired, "PAYMENT_REQUIRED", "feature not included in plan")
	ErrFeatureDisabled = apperr.WithCode(apperr.KindPaymentRequired, "PAYMENT_REQUIRED", "this feature is not enabled for your plan")
	ErrLimitReached    = apperr.WithCode(apperr.KindPaymentRequired, "PAYMENT_REQUIRED", "plan limit reached")
	ErrQuotaExceeded   = apperr.WithCode(apperr.KindPaymentRequired, "PAYMENT_REQUIRED", "you have exceeded your usage quota for this feature")
	ErrUnknownLimit    = apperr.WithCode(apperr.KindPaymentRequired, "PAYMENT_REQUIRED", "limit is not enforceable")
	ErrInvalidAmount   = apperr.New(apperr.KindBadRequest, "consumption amount must be positive")
)

// TenantReader loads the tenant whose plan governs the check.
type TenantReader interface {
	Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error)
}

// PlanReader loads a plan together with its entitlements.
type PlanReader interface {
	Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Plan, error)
}

// UsageLedger records and sums metered usage.
type UsageLedger interface {
	Record(ctx context.Context, s *persistence.Session, tenantID uuid.UUID, featureSlug string, amount int64, at time.Time) error
	Sum(ctx context.Context, s *persistence.Session, tenantID uuid.UUID, featureSlug string, from, to time.Time) (int64, error)
}

// Counter reports the live count of the resource governed by a LIMIT entitlement.
type Counter struct {
	// Noun names the counted resource in limit messages, e.g. "users".
	Noun  string
	Count func(ctx context.Context, s *persistence.Session, tenantID uuid.UUID) (int64, error)
}

// Config wires an Evaluator.
type Config struct {
	Tenants  TenantReader
	Plans    PlanReader
	Usage    UsageLedger
	Counters map[string]Counter
	Now      func() time.Time
}

// Evaluator gates features on the tenant's plan. Checks are read-then-decide without row locks, so concurrent
// requests may overshoot a LIMIT or METER by the number of requests racing past the check.
type Evaluator struct {
	tenants  TenantReader
	plans    PlanReader
	usage    UsageLedger
	counters map[string]Counter
	now      func() time.Time
}

// NewEvaluator builds an Evaluator.
func NewEvaluator(cfg Config) *Evaluator {
	if cfg.Tenants == nil || cfg.Plans == nil || cfg.Usage == nil {
		panic("entitlements.NewEvaluator requires tenants, plans and usage")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	counters := make(map[string]Counter, len(cfg.Counters))
	for slug, c := range cfg.Counters {
		if c.Count == nil {
			panic(fmt.Sprintf("entitlements: counter %q has no Count func", slug))
		}
		counters[slug] = c
	}
	return &Evaluator{tenants: cfg.Tenants, plans: cfg.Plans, usage: cfg.Usage, counters: counters, now: now}
}

// Check fails with PAYMENT_REQUIRED unless the caller's plan allows consuming amount of featureSlug.
func (e *Evaluator) Check(ctx context.Context, s *persistence.Session, id auth.Identity, featureSlug string, amount int64) error {
	if id.Superadmin {
		return nil
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	t, ent, err := e.resolve(ctx, s, id, featureSlug)
	if err != nil {
		return err
	}

	switch ent.Type {
	case persistence.EntitlementFlag:
		if ent.Value != 1 {
			return ErrFeatureDisabled
		}
		return nil

	case persistence.EntitlementLimit:
		counter, ok := e.counters[featureSlug]
		if !ok {
			return ErrUnknownLimit.WithMessage("no counter is registered for limit %s", featureSlug)
		}
		current, err := counter.Count(ctx, s, t.ID)
		if err != nil {
			return fmt.Errorf("count %s: %w", featureSlug, err)
		}
		if current >= ent.Value {
			return ErrLimitReached.WithMessage("you have reached the limit of %d %s for your plan", ent.Value, counter.Noun)
		}
		return nil

	case persistence.EntitlementMeter:
		from, to := e.window(t.Billing)
		used, err := e.usage.Sum(ctx, s, t.ID, featureSlug, from, to)
		if err != nil {
			return fmt.Errorf("sum usage %s: %w", featureSlug, err)
		}
		if used+amount > ent.Value {
			return ErrQuotaExceeded
		}
		return nil

	default:
		return ErrNotInPlan.WithMessage("unsupported entitlement type %q for feature %s", ent.Type, featureSlug)
	}
}

// Consume checks a METER entitlement and records the usage in the same session.
func (e *Evaluator) Consume(ctx context.Context, s *persistence.Session, id auth.Identity, featureSlug string, amount int64) error {
	if err := e.Check(ctx, s, id, featureSlug, amount); err != nil {
		return err
	}
	if id.TenantID == nil {
		return nil
	}
	return e.usage.Record(ctx, s, *id.TenantID, featureSlug, amount, e.now())
}

// Require adapts Check into an access precondition consuming one unit.
func (e *Evaluator) Require(featureSlug string) access.Check {
	return func(ctx context.Context, s *persistence.Session, id auth.Identity) error {
		return e.Check(ctx, s, id, featureSlug, 1)
	}
}

// MeterUsage is the consumption of one metered feature within the current period.
type MeterUsage struct {
	FeatureSlug string    `json:"feature_slug"`
	Used        int64     `json:"used"`
	Limit       int64     `json:"limit"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// Usage reports every METER entitlement of plan for the tenant, ordered by slug.
func (e *Evaluator) Usage(ctx context.Context, s *persistence.Session, t persistence.Tenant, plan persistence.Plan) ([]MeterUsage, error) {
	from, to := e.window(t.Billing)
	out := make([]MeterUsage, 0)
	for _, ent := range plan.Entitlements {
		if ent.Type != persistence.EntitlementMeter {
			continue
		}
		used, err := e.usage.Sum(ctx, s, t.ID, ent.FeatureSlug, from, to)
		if err != nil {
			return nil, fmt.Errorf("sum usage %s: %w", ent.FeatureSlug, err)
		}
		out = append(out, MeterUsage{FeatureSlug: ent.FeatureSlug, Used: used, Limit: ent.Value, PeriodStart: from, PeriodEnd: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FeatureSlug < out[j].FeatureSlug })
	return out, nil
}

func (e *Evaluator) resolve(ctx context.Context, s *persistence.Session, id auth.Identity, featureSlug string) (persistence.Tenant, persistence.Entitlement, error) {
	if id.TenantID == nil {
		return persistence.Tenant{}, persistence.Entitlement{}, ErrNoSubscription
	}
	t, err := e.tenants.Get(ctx, s, *id.TenantID)
	if err != nil {
		if errors.Is(err, persistence.ErrTenantNotFound) {
			return t, persistence.Entitlement{}, ErrNoSubscription
		}
		return t, persistence.Entitlement{}, fmt.Errorf("load tenant: %w", err)
	}
	if t.Billing.PlanID == nil || t.Billing.Status != persistence.SubscriptionActive {
		return t, persistence.Entitlement{}, ErrNoSubscription
	}
	plan, err := e.plans.Get(ctx, s, *t.Billing.PlanID)
	if err != nil {
		if errors.Is(err, persistence.ErrPlanNotFound) {
			return t, persistence.Entitlement{}, ErrNoSubscription
		}
		return t, persistence.Entitlement{}, fmt.Errorf("load plan: %w", err)
	}
	ent, ok := plan.Entitlement(featureSlug)
	if !ok {
		return t, ent, ErrNotInPlan.WithMessage("your plan does not include the feature: %s", featureSlug)
	}
	return t, ent, nil
}

// window returns the inclusive usage window of the current billing period. A missing start falls back to one
// calendar month before the end; a missing end is treated as now.
func (e *Evaluator) window(b persistence.BillingState) (time.Time, time.Time) {
	end := e.now()
	if b.CurrentPeriodEndsAt != nil {
		end = *b.CurrentPeriodEndsAt
	}
	if b.CurrentPeriodStartsAt != nil && b.CurrentPeriodStartsAt.Before(end) {
		return *b.CurrentPeriodStartsAt, end
	}
	return end.AddDate(0, -1, 0), end
}
