package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Repository defines the persistence operations required by the subscriptions service.
type Repository interface {
	ListPlans(ctx context.Context, s *persistence.Session, activeOnly bool) ([]persistence.Plan, error)
	GetPlan(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Plan, error)
	GetTenant(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error)
	RecordCheckout(ctx context.Context, s *persistence.Session, cs persistence.CheckoutSession) (bool, error)
}

type postgresRepository struct {
	plans     *persistence.PlanStore
	tenants   *persistence.TenantStore
	checkouts *persistence.CheckoutSessionStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(plans *persistence.PlanStore, tenants *persistence.TenantStore, checkouts *persistence.CheckoutSessionStore) Repository {
	if plans == nil || tenants == nil || checkouts == nil {
		panic("plan, tenant and checkout session stores are required")
	}
	return &postgresRepository{plans: plans, tenants: tenants, checkouts: checkouts}
}

func (r *postgresRepository) ListPlans(ctx context.Context, s *persistence.Session, activeOnly bool) ([]persistence.Plan, error) {
	return r.plans.List(ctx, s, activeOnly)
}

func (r *postgresRepository) GetPlan(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Plan, error) {
	return r.plans.Get(ctx, s, id)
}

func (r *postgresRepository) GetTenant(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error) {
	return r.tenants.Get(ctx, s, id)
}

func (r *postgresRepository) RecordCheckout(ctx context.Context, s *persistence.Session, cs persistence.CheckoutSession) (bool, error) {
	return r.checkouts.Create(ctx, s, cs)
}
