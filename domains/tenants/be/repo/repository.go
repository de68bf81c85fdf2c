package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Repository defines the persistence operations required by the tenants service.
type Repository interface {
	Create(ctx context.Context, s *persistence.Session, params persistence.CreateTenantParams) (persistence.Tenant, error)
	Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error)
	GetForUpdate(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error)
	List(ctx context.Context, s *persistence.Session, params persistence.ListTenantsParams) ([]persistence.Tenant, int, error)
	Update(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateTenantParams) (persistence.Tenant, error)
	UpdateBilling(ctx context.Context, s *persistence.Session, id uuid.UUID, state persistence.BillingState) (persistence.Tenant, error)
	SetAdminUser(ctx context.Context, s *persistence.Session, id, userID uuid.UUID) error
	Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error

	CreateRole(ctx context.Context, s *persistence.Session, params persistence.CreateRoleParams) (persistence.Role, error)
	GetUser(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error)
	CreateUser(ctx context.Context, s *persistence.Session, params persistence.CreateUserParams) (persistence.User, error)
	ListUsers(ctx context.Context, s *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error)
	GetPlan(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Plan, error)

	Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error
}

// Stores groups the shared stores the repository delegates to.
type Stores struct {
	Tenants *persistence.TenantStore
	Roles   *persistence.RoleStore
	Users   *persistence.UserStore
	Plans   *persistence.PlanStore
	Audit   *persistence.AuditLogStore
}

type postgresRepository struct {
	stores Stores
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(stores Stores) Repository {
	if stores.Tenants == nil || stores.Roles == nil || stores.Users == nil || stores.Plans == nil || stores.Audit == nil {
		panic("tenant, role, user, plan and audit stores are required")
	}
	return &postgresRepository{stores: stores}
}

func (r *postgresRepository) Create(ctx context.Context, s *persistence.Session, params persistence.CreateTenantParams) (persistence.Tenant, error) {
	return r.stores.Tenants.Create(ctx, s, params)
}

func (r *postgresRepository) Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error) {
	return r.stores.Tenants.Get(ctx, s, id)
}

func (r *postgresRepository) GetForUpdate(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error) {
	return r.stores.Tenants.GetForUpdate(ctx, s, id)
}

func (r *postgresRepository) List(ctx context.Context, s *persistence.Session, params persistence.ListTenantsParams) ([]persistence.Tenant, int, error) {
	return r.stores.Tenants.List(ctx, s, params)
}

func (r *postgresRepository) Update(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateTenantParams) (persistence.Tenant, error) {
	return r.stores.Tenants.Update(ctx, s, id, params)
}

func (r *postgresRepository) UpdateBilling(ctx context.Context, s *persistence.Session, id uuid.UUID, state persistence.BillingState) (persistence.Tenant, error) {
	return r.stores.Tenants.UpdateBilling(ctx, s, id, state)
}

func (r *postgresRepository) SetAdminUser(ctx context.Context, s *persistence.Session, id, userID uuid.UUID) error {
	return r.stores.Tenants.SetAdminUser(ctx, s, id, userID)
}

func (r *postgresRepository) Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error {
	return r.stores.Tenants.Delete(ctx, s, id)
}

func (r *postgresRepository) CreateRole(ctx context.Context, s *persistence.Session, params persistence.CreateRoleParams) (persistence.Role, error) {
	return r.stores.Roles.Create(ctx, s, params)
}

func (r *postgresRepository) GetUser(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error) {
	return r.stores.Users.Get(ctx, s, id)
}

func (r *postgresRepository) CreateUser(ctx context.Context, s *persistence.Session, params persistence.CreateUserParams) (persistence.User, error) {
	return r.stores.Users.Create(ctx, s, params)
}

func (r *postgresRepository) ListUsers(ctx context.Context, s *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error) {
	return r.stores.Users.List(ctx, s, params)
}

func (r *postgresRepository) GetPlan(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Plan, error) {
	return r.stores.Plans.Get(ctx, s, id)
}

func (r *postgresRepository) Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	return r.stores.Audit.Insert(ctx, s, tenantID, userID, action, details)
}
