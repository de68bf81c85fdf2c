package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Repository defines the persistence operations required by the items service.
type Repository interface {
	Create(ctx context.Context, s *persistence.Session, params persistence.CreateItemParams) (persistence.Item, error)
	Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Item, error)
	List(ctx context.Context, s *persistence.Session, tenantID uuid.UUID, skip, limit int) ([]persistence.Item, int, error)
	Update(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateItemParams) (persistence.Item, error)
	Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error

	// Tenant returns the owning tenant; its slug roots the item image prefix.
	Tenant(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error)
	Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error
}

type postgresRepository struct {
	items   *persistence.ItemStore
	tenants *persistence.TenantStore
	audit   *persistence.AuditLogStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(items *persistence.ItemStore, tenants *persistence.TenantStore, audit *persistence.AuditLogStore) Repository {
	if items == nil || tenants == nil || audit == nil {
		panic("item, tenant and audit stores are required")
	}
	return &postgresRepository{items: items, tenants: tenants, audit: audit}
}

func (r *postgresRepository) Create(ctx context.Context, s *persistence.Session, params persistence.CreateItemParams) (persistence.Item, error) {
	return r.items.Create(ctx, s, params)
}

func (r *postgresRepository) Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Item, error) {
	return r.items.Get(ctx, s, id)
}

func (r *postgresRepository) List(ctx context.Context, s *persistence.Session, tenantID uuid.UUID, skip, limit int) ([]persistence.Item, int, error) {
	return r.items.List(ctx, s, tenantID, skip, limit)
}

func (r *postgresRepository) Update(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateItemParams) (persistence.Item, error) {
	return r.items.Update(ctx, s, id, params)
}

func (r *postgresRepository) Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error {
	return r.items.Delete(ctx, s, id)
}

func (r *postgresRepository) Tenant(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error) {
	return r.tenants.Get(ctx, s, id)
}

func (r *postgresRepository) Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	return r.audit.Insert(ctx, s, tenantID, userID, action, details)
}
