package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

// Repository defines the persistence operations required by the users service.
type Repository interface {
	Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error)
	GetWithRole(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, *persistence.Role, error)
	List(ctx context.Context, s *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error)
	Create(ctx context.Context, s *persistence.Session, params persistence.CreateUserParams) (persistence.User, error)
	GetRole(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Role, error)
	LockAdmins(ctx context.Context, s *persistence.Session, tenantID uuid.UUID) ([]uuid.UUID, error)
	UpdateRole(ctx context.Context, s *persistence.Session, id, roleID, updatedBy uuid.UUID) (persistence.User, error)
	AcceptTerms(ctx context.Context, s *persistence.Session, id uuid.UUID, at time.Time) (persistence.User, error)
	Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error
	Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error
}

type postgresRepository struct {
	users *persistence.UserStore
	roles *persistence.RoleStore
	audit *persistence.AuditLogStore
}

// NewPostgresRepository constructs a repository backed by the shared persistence layer.
func NewPostgresRepository(users *persistence.UserStore, roles *persistence.RoleStore, audit *persistence.AuditLogStore) Repository {
	if users == nil || roles == nil || audit == nil {
		panic("user, role and audit stores are required")
	}
	return &postgresRepository{users: users, roles: roles, audit: audit}
}

func (r *postgresRepository) Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error) {
	return r.users.Get(ctx, s, id)
}

func (r *postgresRepository) GetWithRole(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, *persistence.Role, error) {
	return r.users.GetWithRole(ctx, s, id)
}

func (r *postgresRepository) List(ctx context.Context, s *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error) {
	return r.users.List(ctx, s, params)
}

func (r *postgresRepository) Create(ctx context.Context, s *persistence.Session, params persistence.CreateUserParams) (persistence.User, error) {
	return r.users.Create(ctx, s, params)
}

func (r *postgresRepository) GetRole(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Role, error) {
	return r.roles.Get(ctx, s, id)
}

func (r *postgresRepository) LockAdmins(ctx context.Context, s *persistence.Session, tenantID uuid.UUID) ([]uuid.UUID, error) {
	return r.users.LockAdmins(ctx, s, tenantID)
}

func (r *postgresRepository) UpdateRole(ctx context.Context, s *persistence.Session, id, roleID, updatedBy uuid.UUID) (persistence.User, error) {
	return r.users.UpdateRole(ctx, s, id, roleID, updatedBy)
}

func (r *postgresRepository) AcceptTerms(ctx context.Context, s *persistence.Session, id uuid.UUID, at time.Time) (persistence.User, error) {
	return r.users.AcceptTerms(ctx, s, id, at)
}

func (r *postgresRepository) Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error {
	return r.users.Delete(ctx, s, id)
}

func (r *postgresRepository) Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	return r.audit.Insert(ctx, s, tenantID, userID, action, details)
}
