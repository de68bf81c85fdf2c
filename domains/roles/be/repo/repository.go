package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Repository exposes the role persistence operations the service relies on.
type Repository interface {
	Create(ctx context.Context, s *persistence.Session, params persistence.CreateRoleParams) (persistence.Role, error)
	Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Role, error)
	List(ctx context.Context, s *persistence.Session, tenantID uuid.UUID) ([]persistence.Role, error)
	Update(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateRoleParams) (persistence.Role, error)
	Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error
	CountAssigned(ctx context.Context, s *persistence.Session, id uuid.UUID) (int64, error)
	Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error
}

type postgresRepository struct {
	roles *persistence.RoleStore
	users *persistence.UserStore
	audit *persistence.AuditLogStore
}

// NewPostgresRepository wires the shared stores into a roles Repository.
func NewPostgresRepository(roles *persistence.RoleStore, users *persistence.UserStore, audit *persistence.AuditLogStore) Repository {
	if roles == nil || users == nil || audit == nil {
		panic("roles repository requires role, user and audit stores")
	}
	return &postgresRepository{roles: roles, users: users, audit: audit}
}

func (r *postgresRepository) Create(ctx context.Context, s *persistence.Session, params persistence.CreateRoleParams) (persistence.Role, error) {
	return r.roles.Create(ctx, s, params)
}

func (r *postgresRepository) Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Role, error) {
	return r.roles.Get(ctx, s, id)
}

func (r *postgresRepository) List(ctx context.Context, s *persistence.Session, tenantID uuid.UUID) ([]persistence.Role, error) {
	return r.roles.List(ctx, s, tenantID)
}

func (r *postgresRepository) Update(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateRoleParams) (persistence.Role, error) {
	return r.roles.Update(ctx, s, id, params)
}

func (r *postgresRepository) Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error {
	return r.roles.Delete(ctx, s, id)
}

func (r *postgresRepository) CountAssigned(ctx context.Context, s *persistence.Session, id uuid.UUID) (int64, error) {
	return r.users.CountByRole(ctx, s, id)
}

func (r *postgresRepository) Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	return r.audit.Insert(ctx, s, tenantID, userID, action, details)
}
