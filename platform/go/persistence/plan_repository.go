package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	PlansTable            = "plans"
	PlanEntitlementsTable = "plan_entitlements"
)

// Entitlement types stored in plan_entitlements.entitlement_type.
const (
	EntitlementFlag  = "FLAG"
	EntitlementLimit = "LIMIT"
	EntitlementMeter = "METER"
)

const planColumns = `id, name, description, is_active, external_product_id, external_price_id, created_at, updated_at`

// Plan represents a row in the plans table with its entitlements.
type Plan struct {
	ID                uuid.UUID
	Name              string
	Description       *string
	IsActive          bool
	ExternalProductID *string
	ExternalPriceID   *string
	Entitlements      []Entitlement
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Entitlement represents a row in plan_entitlements.
type Entitlement struct {
	FeatureSlug string
	Type        string
	Value       int64
}

// Entitlement returns the entitlement for slug, if the plan includes it.
func (p Plan) Entitlement(slug string) (Entitlement, bool) {
	for _, e := range p.Entitlements {
		if e.FeatureSlug == slug {
			return e, true
		}
	}
	return Entitlement{}, false
}

var (
	// ErrPlanNotFound indicates a missing plan.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrPlanConflict indicates a duplicated plan name or feature slug.
	ErrPlanConflict = errors.New("plan conflict")
)

// PlanStore exposes persistence helpers for plans and their entitlements. Plans are global and not
// tenant-scoped.
type PlanStore struct{}

// NewPlanStore returns a store instance.
func NewPlanStore() *PlanStore { return &PlanStore{} }

// CreatePlanParams captures a plan definition.
type CreatePlanParams struct {
	Name              string
	Description       *string
	ExternalProductID *string
	ExternalPriceID   *string
	Entitlements      []Entitlement
}

// Create inserts a plan and its entitlements.
func (st *PlanStore) Create(ctx context.Context, s *Session, params CreatePlanParams) (Plan, error) {
	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, name, description, external_product_id, external_price_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING %s
    `, PlansTable, planColumns),
		uuid.New(), strings.TrimSpace(params.Name), params.Description, params.ExternalProductID, params.ExternalPriceID,
	)

	plan, err := scanPlan(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Plan{}, ErrPlanConflict
		}
		return Plan{}, fmt.Errorf("insert plan: %w", err)
	}

	for _, e := range params.Entitlements {
		if _, err := s.Exec(ctx, fmt.Sprintf(`
            INSERT INTO %s (id, plan_id, feature_slug, entitlement_type, value)
            VALUES ($1, $2, $3, $4, $5)
        `, PlanEntitlementsTable), uuid.New(), plan.ID, e.FeatureSlug, e.Type, e.Value); err != nil {
			if isUniqueViolation(err) {
				return Plan{}, ErrPlanConflict
			}
			return Plan{}, fmt.Errorf("insert entitlement %s: %w", e.FeatureSlug, err)
		}
		plan.Entitlements = append(plan.Entitlements, e)
	}
	return plan, nil
}

// Get returns a plan with its entitlements.
func (st *PlanStore) Get(ctx context.Context, s *Session, id uuid.UUID) (Plan, error) {
	return st.getOne(ctx, s, "id = $1", id)
}

// FindByExternalPrice resolves a plan by the payment provider price id.
func (st *PlanStore) FindByExternalPrice(ctx context.Context, s *Session, priceID string) (Plan, error) {
	return st.getOne(ctx, s, "external_price_id = $1", priceID)
}

// FindByExternalProduct resolves a plan by the payment provider product id.
func (st *PlanStore) FindByExternalProduct(ctx context.Context, s *Session, productID string) (Plan, error) {
	return st.getOne(ctx, s, "external_product_id = $1", productID)
}

func (st *PlanStore) getOne(ctx context.Context, s *Session, predicate string, arg any) (Plan, error) {
	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s WHERE %s LIMIT 1
    `, planColumns, PlansTable, predicate), arg)

	plan, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrPlanNotFound
		}
		return Plan{}, fmt.Errorf("get plan: %w", err)
	}

	entitlements, err := st.entitlements(ctx, s, []uuid.UUID{plan.ID})
	if err != nil {
		return Plan{}, err
	}
	plan.Entitlements = entitlements[plan.ID]
	return plan, nil
}

// List returns plans ordered by name, optionally restricted to active ones.
func (st *PlanStore) List(ctx context.Context, s *Session, activeOnly bool) ([]Plan, error) {
	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s
        WHERE ($1::boolean IS FALSE OR is_active)
        ORDER BY name ASC
    `, planColumns, PlansTable), activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	plans := make([]Plan, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		plan, scanErr := scanPlan(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan plan: %w", scanErr)
		}
		plans = append(plans, plan)
		ids = append(ids, plan.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	if len(plans) == 0 {
		return plans, nil
	}

	entitlements, err := st.entitlements(ctx, s, ids)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].Entitlements = entitlements[plans[i].ID]
	}
	return plans, nil
}

func (st *PlanStore) entitlements(ctx context.Context, s *Session, planIDs []uuid.UUID) (map[uuid.UUID][]Entitlement, error) {
	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT plan_id, feature_slug, entitlement_type, value
        FROM %s
        WHERE plan_id = ANY($1)
        ORDER BY feature_slug ASC
    `, PlanEntitlementsTable), planIDs)
	if err != nil {
		return nil, fmt.Errorf("list entitlements: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]Entitlement, len(planIDs))
	for rows.Next() {
		var (
			planID uuid.UUID
			e      Entitlement
		)
		if err := rows.Scan(&planID, &e.FeatureSlug, &e.Type, &e.Value); err != nil {
			return nil, fmt.Errorf("scan entitlement: %w", err)
		}
		out[planID] = append(out[planID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entitlements: %w", err)
	}
	return out, nil
}

func scanPlan(row pgx.Row) (Plan, error) {
	var p Plan
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.IsActive, &p.ExternalProductID, &p.ExternalPriceID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Plan{}, err
	}
	return p, nil
}
