package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Repository exposes the api key persistence operations the service relies on.
type Repository interface {
	Create(ctx context.Context, s *persistence.Session, params persistence.CreateAPIKeyParams) (persistence.APIKey, error)
	ListByUser(ctx context.Context, s *persistence.Session, userID uuid.UUID) ([]persistence.APIKey, error)
	Delete(ctx context.Context, s *persistence.Session, id, userID uuid.UUID) error
	Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error
}

type postgresRepository struct {
	keys  *persistence.APIKeyStore
	audit *persistence.AuditLogStore
}

// NewPostgresRepository wires the shared stores into an api keys Repository.
func NewPostgresRepository(keys *persistence.APIKeyStore, audit *persistence.AuditLogStore) Repository {
	if keys == nil || audit == nil {
		panic("api keys repository requires key and audit stores")
	}
	return &postgresRepository{keys: keys, audit: audit}
}

func (r *postgresRepository) Create(ctx context.Context, s *persistence.Session, params persistence.CreateAPIKeyParams) (persistence.APIKey, error) {
	return r.keys.Create(ctx, s, params)
}

func (r *postgresRepository) ListByUser(ctx context.Context, s *persistence.Session, userID uuid.UUID) ([]persistence.APIKey, error) {
	return r.keys.ListByUser(ctx, s, userID)
}

func (r *postgresRepository) Delete(ctx context.Context, s *persistence.Session, id, userID uuid.UUID) error {
	return r.keys.Delete(ctx, s, id, userID)
}

func (r *postgresRepository) Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	return r.audit.Insert(ctx, s, tenantID, userID, action, details)
}
