package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Repository reads the tenant audit trail.
type Repository interface {
	List(ctx context.Context, s *persistence.Session, tenantID uuid.UUID, skip, limit int) ([]persistence.AuditLog, int, error)
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(audit *persistence.AuditLogStore) Repository {
	if audit == nil {
		panic("audit store is required")
	}
	return audit
}
