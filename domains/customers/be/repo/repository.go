package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Repository defines the persistence operations required by the customers service.
type Repository interface {
	Create(ctx context.Context, s *persistence.Session, params persistence.CreateCustomerParams) (persistence.Customer, error)
	Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Customer, error)
	List(ctx context.Context, s *persistence.Session, tenantID uuid.UUID, skip, limit int) ([]persistence.Customer, int, error)
	Update(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateCustomerParams) (persistence.Customer, error)
	Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error
	Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error
}

type postgresRepository struct {
	customers *persistence.CustomerStore
	audit     *persistence.AuditLogStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(customers *persistence.CustomerStore, audit *persistence.AuditLogStore) Repository {
	if customers == nil || audit == nil {
		panic("customer and audit stores are required")
	}
	return &postgresRepository{customers: customers, audit: audit}
}

func (r *postgresRepository) Create(ctx context.Context, s *persistence.Session, params persistence.CreateCustomerParams) (persistence.Customer, error) {
	return r.customers.Create(ctx, s, params)
}

func (r *postgresRepository) Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Customer, error) {
	return r.customers.Get(ctx, s, id)
}

func (r *postgresRepository) List(ctx context.Context, s *persistence.Session, tenantID uuid.UUID, skip, limit int) ([]persistence.Customer, int, error) {
	return r.customers.List(ctx, s, tenantID, skip, limit)
}

func (r *postgresRepository) Update(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateCustomerParams) (persistence.Customer, error) {
	return r.customers.Update(ctx, s, id, params)
}

func (r *postgresRepository) Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error {
	return r.customers.Delete(ctx, s, id)
}

func (r *postgresRepository) Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	return r.audit.Insert(ctx, s, tenantID, userID, action, details)
}
