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

const TenantsTable = "tenants"

// Subscription statuses stored in tenants.subscription_status.
const (
	SubscriptionInactive = "inactive"
	SubscriptionTrialing = "trialing"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

const tenantColumns = `id, name, slug, admin_user_id, logo_path, plan_id, subscription_status,
        current_period_starts_at, current_period_ends_at, billing_event_at,
        external_subscription_id, external_customer_id, created_at, updated_at`

// Tenant represents a row in the tenants table.
type Tenant struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	AdminUserID *uuid.UUID
	LogoPath    *string
	Billing     BillingState
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BillingState groups the subscription columns mutated by webhooks and plan assignment.
type BillingState struct {
	PlanID                 *uuid.UUID
	Status                 string
	CurrentPeriodStartsAt  *time.Time
	CurrentPeriodEndsAt    *time.Time
	LastEventAt            *time.Time
	ExternalSubscriptionID *string
	ExternalCustomerID     *string
}

var (
	// ErrTenantNotFound indicates a missing (or invisible) tenant.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrTenantConflict indicates a duplicated slug.
	ErrTenantConflict = errors.New("tenant conflict")
)

// TenantStore exposes persistence helpers for the tenants table.
type TenantStore struct{}

// NewTenantStore returns a store instance; the schema is owned by migrations.
func NewTenantStore() *TenantStore { return &TenantStore{} }

// CreateTenantParams captures the fields required to insert a tenant.
type CreateTenantParams struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedBy uuid.UUID
}

// Create inserts a tenant with inactive billing.
func (st *TenantStore) Create(ctx context.Context, s *Session, params CreateTenantParams) (Tenant, error) {
	if params.ID == uuid.Nil {
		return Tenant{}, errors.New("tenant id is required")
	}

	row := s.QueryRow(ctx, fmt.Sprintf(`
        INSERT INTO %s (id, name, slug, subscription_status, created_by, updated_by)
        VALUES ($1, $2, $3, $4, $5, $5)
        RETURNING %s
    `, TenantsTable, tenantColumns),
		params.ID, strings.TrimSpace(params.Name), params.Slug, SubscriptionInactive, nullableUUID(params.CreatedBy),
	)

	tenant, err := scanTenant(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Tenant{}, ErrTenantConflict
		}
		return Tenant{}, fmt.Errorf("insert tenant: %w", err)
	}
	return tenant, nil
}

// Get returns a tenant visible to the session.
func (st *TenantStore) Get(ctx context.Context, s *Session, id uuid.UUID) (Tenant, error) {
	return st.getOne(ctx, s, "id = $1", "", id)
}

// GetForUpdate returns the tenant and locks the row until the session's transaction ends.
func (st *TenantStore) GetForUpdate(ctx context.Context, s *Session, id uuid.UUID) (Tenant, error) {
	return st.getOne(ctx, s, "id = $1", "FOR UPDATE", id)
}

// FindByExternalCustomerForUpdate resolves a tenant through the payment provider customer id.
func (st *TenantStore) FindByExternalCustomerForUpdate(ctx context.Context, s *Session, customerID string) (Tenant, error) {
	if strings.TrimSpace(customerID) == "" {
		return Tenant{}, ErrTenantNotFound
	}
	return st.getOne(ctx, s, "external_customer_id = $1", "ORDER BY created_at LIMIT 1 FOR UPDATE", customerID)
}

func (st *TenantStore) getOne(ctx context.Context, s *Session, predicate, suffix string, arg any) (Tenant, error) {
	args := []any{arg}
	scope := scopeClause(s, "id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        SELECT %s FROM %s
        WHERE %s AND %s
        %s
    `, tenantColumns, TenantsTable, predicate, scope, suffix), args...)

	tenant, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tenant{}, ErrTenantNotFound
		}
		return Tenant{}, fmt.Errorf("get tenant: %w", err)
	}
	return tenant, nil
}

// ListTenantsParams controls pagination for List.
type ListTenantsParams struct {
	Skip  int
	Limit int
}

// List returns tenants visible to the session ordered by creation time, plus the total count.
func (st *TenantStore) List(ctx context.Context, s *Session, params ListTenantsParams) ([]Tenant, int, error) {
	limit := clampLimit(params.Limit, 100, 1000)

	var args []any
	scope := scopeClause(s, "id", &args)

	var total int
	if err := s.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, TenantsTable, scope), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tenants: %w", err)
	}
	if total == 0 {
		return []Tenant{}, 0, nil
	}

	args = append(args, limit, max(params.Skip, 0))
	rows, err := s.Query(ctx, fmt.Sprintf(`
        SELECT %s FROM %s
        WHERE %s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d
    `, tenantColumns, TenantsTable, scope, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]Tenant, 0)
	for rows.Next() {
		tenant, scanErr := scanTenant(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan tenant: %w", scanErr)
		}
		tenants = append(tenants, tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate tenants: %w", err)
	}
	return tenants, total, nil
}

// UpdateTenantParams represents profile fields editable by tenant admins and superadmins.
type UpdateTenantParams struct {
	Name      *string
	Slug      *string
	LogoPath  *string
	UpdatedBy uuid.UUID
}

// Update applies the provided fields and returns the updated tenant.
func (st *TenantStore) Update(ctx context.Context, s *Session, id uuid.UUID, params UpdateTenantParams) (Tenant, error) {
	setParts := []string{}
	var args []any

	if params.Name != nil {
		args = append(args, strings.TrimSpace(*params.Name))
		setParts = append(setParts, fmt.Sprintf("name = $%d", len(args)))
	}
	if params.Slug != nil {
		args = append(args, *params.Slug)
		setParts = append(setParts, fmt.Sprintf("slug = $%d", len(args)))
	}
	if params.LogoPath != nil {
		args = append(args, *params.LogoPath)
		setParts = append(setParts, fmt.Sprintf("logo_path = $%d", len(args)))
	}
	if len(setParts) == 0 {
		return Tenant{}, errors.New("no fields to update")
	}

	args = append(args, nullableUUID(params.UpdatedBy))
	setParts = append(setParts, fmt.Sprintf("updated_by = $%d", len(args)))

	args = append(args, id)
	idPos := len(args)
	scope := scopeClause(s, "id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s
        SET %s, updated_at = NOW()
        WHERE id = $%d AND %s
        RETURNING %s
    `, TenantsTable, strings.Join(setParts, ", "), idPos, scope, tenantColumns), args...)

	tenant, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tenant{}, ErrTenantNotFound
		}
		if isUniqueViolation(err) {
			return Tenant{}, ErrTenantConflict
		}
		return Tenant{}, fmt.Errorf("update tenant: %w", err)
	}
	return tenant, nil
}

// SetAdminUser links the tenant's owning admin.
func (st *TenantStore) SetAdminUser(ctx context.Context, s *Session, id, userID uuid.UUID) error {
	args := []any{userID, id}
	scope := scopeClause(s, "id", &args)

	tag, err := s.Exec(ctx, fmt.Sprintf(`
        UPDATE %s SET admin_user_id = $1, updated_at = NOW() WHERE id = $2 AND %s
    `, TenantsTable, scope), args...)
	if err != nil {
		return fmt.Errorf("set tenant admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

// UpdateBilling replaces the billing columns of a tenant.
func (st *TenantStore) UpdateBilling(ctx context.Context, s *Session, id uuid.UUID, state BillingState) (Tenant, error) {
	args := []any{
		state.PlanID,
		state.Status,
		state.CurrentPeriodStartsAt,
		state.CurrentPeriodEndsAt,
		state.LastEventAt,
		state.ExternalSubscriptionID,
		state.ExternalCustomerID,
		id,
	}
	scope := scopeClause(s, "id", &args)

	row := s.QueryRow(ctx, fmt.Sprintf(`
        UPDATE %s
        SET plan_id = $1,
            subscription_status = $2,
            current_period_starts_at = $3,
            current_period_ends_at = $4,
            billing_event_at = $5,
            external_subscription_id = $6,
            external_customer_id = $7,
            updated_at = NOW()
        WHERE id = $8 AND %s
        RETURNING %s
    `, TenantsTable, scope, tenantColumns), args...)

	tenant, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tenant{}, ErrTenantNotFound
		}
		return Tenant{}, fmt.Errorf("update tenant billing: %w", err)
	}
	return tenant, nil
}

// Delete removes a tenant and, through cascades, everything it owns.
func (st *TenantStore) Delete(ctx context.Context, s *Session, id uuid.UUID) error {
	args := []any{id}
	scope := scopeClause(s, "id", &args)

	tag, err := s.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND %s`, TenantsTable, scope), args...)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTenantNotFound
	}
	return nil
}

func scanTenant(row pgx.Row) (Tenant, error) {
	var t Tenant
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.AdminUserID,
		&t.LogoPath,
		&t.Billing.PlanID,
		&t.Billing.Status,
		&t.Billing.CurrentPeriodStartsAt,
		&t.Billing.CurrentPeriodEndsAt,
		&t.Billing.LastEventAt,
		&t.Billing.ExternalSubscriptionID,
		&t.Billing.ExternalCustomerID,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return Tenant{}, err
	}
	return t, nil
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func clampLimit(limit, def, ceiling int) int {
	if limit <= 0 {
		return def
	}
	if limit > ceiling {
		return ceiling
	}
	return limit
}
