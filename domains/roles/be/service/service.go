package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/domains/roles/be/repo"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
)

// Audit actions written by this service.
const (
	ActionRoleCreated = "ROLE_CREATED"
	ActionRoleUpdated = "ROLE_UPDATED"
	ActionRoleDeleted = "ROLE_DELETED"
)

// Domain sentinel errors.
var (
	ErrNotFound          = apperr.WithCode(apperr.KindNotFound, "ROLE_NOT_FOUND", "role not found")
	ErrConflict          = apperr.WithCode(apperr.KindConflict, "ROLE_EXISTS", "a role with this name already exists in your tenant")
	ErrAdminRoleLocked   = apperr.WithCode(apperr.KindForbidden, "ADMIN_ROLE_LOCKED", "admin role permissions cannot be updated via this endpoint")
	ErrAdminRoleDelete   = apperr.WithCode(apperr.KindForbidden, "ADMIN_ROLE_LOCKED", "admin role cannot be deleted")
	ErrRoleInUse         = apperr.WithCode(apperr.KindConflict, "ROLE_IN_USE", "cannot delete role while users are assigned to it")
	ErrInvalidPermission = apperr.ValidationField("permissions", "contains an unknown permission name")
	ErrNameRequired      = apperr.ValidationField("name", "field is required")
)

// Role is the domain view of a tenant role.
type Role struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	Name          string
	IsAdminRole   bool
	PermissionSet int64
	Permissions   []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateInput holds the fields for a new role.
type CreateInput struct {
	Name        string
	Permissions []string
}

// UpdateInput holds optional changes; nil leaves a field untouched.
type UpdateInput struct {
	Name        *string
	Permissions *[]string
}

// Service defines the business operations for tenant roles.
type Service interface {
	Create(ctx context.Context, id auth.Identity, input CreateInput) (Role, error)
	List(ctx context.Context, id auth.Identity) ([]Role, error)
	Get(ctx context.Context, id auth.Identity, roleID uuid.UUID) (Role, error)
	Update(ctx context.Context, id auth.Identity, roleID uuid.UUID, input UpdateInput) (Role, error)
	Delete(ctx context.Context, id auth.Identity, roleID uuid.UUID) error
	Catalogue() []permissions.Group
}

// Permissions builds permission checks.
type Permissions interface {
	RequirePermission(p permissions.Permission) access.Check
}

type service struct {
	runner persistence.Runner
	repo   repo.Repository
	perms  Permissions
}

// New constructs a roles Service instance.
func New(runner persistence.Runner, repository repo.Repository, perms Permissions) Service {
	if runner == nil || repository == nil || perms == nil {
		panic("roles service requires runner, repository and permissions")
	}
	return &service{runner: runner, repo: repository, perms: perms}
}

func (s *service) Create(ctx context.Context, id auth.Identity, input CreateInput) (Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Role{}, ErrNameRequired
	}
	set, err := permissions.Encode(input.Permissions)
	if err != nil {
		return Role{}, ErrInvalidPermission.WithMessage("%s", err.Error())
	}

	var out Role
	err = s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id,
			access.RequireTenantMember(),
			s.perms.RequirePermission(permissions.RolesCreate),
		); err != nil {
			return err
		}

		role, err := s.repo.Create(ctx, sess, persistence.CreateRoleParams{
			TenantID:    id.Tenant(),
			Name:        name,
			Permissions: int64(set),
			CreatedBy:   id.UserID,
		})
		if err != nil {
			return mapPersistenceError(err)
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"role_id":     role.ID.String(),
			"name":        role.Name,
			"permissions": set.Names(),
		})
		if err := s.repo.Audit(ctx, sess, role.TenantID, id.UserID, ActionRoleCreated, details); err != nil {
			return err
		}
		out = mapRole(role)
		return nil
	})
	return out, err
}

func (s *service) List(ctx context.Context, id auth.Identity) ([]Role, error) {
	var out []Role
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id,
			access.RequireTenantMember(),
			s.perms.RequirePermission(permissions.RolesRead),
		); err != nil {
			return err
		}

		records, err := s.repo.List(ctx, sess, id.Tenant())
		if err != nil {
			return err
		}
		out = make([]Role, 0, len(records))
		for _, record := range records {
			out = append(out, mapRole(record))
		}
		return nil
	})
	return out, err
}

func (s *service) Get(ctx context.Context, id auth.Identity, roleID uuid.UUID) (Role, error) {
	var out Role
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, s.perms.RequirePermission(permissions.RolesRead)); err != nil {
			return err
		}
		role, err := s.repo.Get(ctx, sess, roleID)
		if err != nil {
			return mapPersistenceError(err)
		}
		out = mapRole(role)
		return nil
	})
	return out, err
}

// Update refuses permission changes on the admin role; renaming it is allowed.
func (s *service) Update(ctx context.Context, id auth.Identity, roleID uuid.UUID, input UpdateInput) (Role, error) {
	params := persistence.UpdateRoleParams{UpdatedBy: id.UserID}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return Role{}, ErrNameRequired
		}
		params.Name = &name
	}
	if input.Permissions != nil {
		set, err := permissions.Encode(*input.Permissions)
		if err != nil {
			return Role{}, ErrInvalidPermission.WithMessage("%s", err.Error())
		}
		raw := int64(set)
		params.Permissions = &raw
	}

	var out Role
	err := s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, s.perms.RequirePermission(permissions.RolesUpdate)); err != nil {
			return err
		}

		current, err := s.repo.Get(ctx, sess, roleID)
		if err != nil {
			return mapPersistenceError(err)
		}
		if current.IsAdminRole && params.Permissions != nil && *params.Permissions != current.Permissions {
			return ErrAdminRoleLocked
		}

		updated, err := s.repo.Update(ctx, sess, roleID, params)
		if err != nil {
			return mapPersistenceError(err)
		}

		details := map[string]any{"role_id": roleID.String()}
		if params.Name != nil {
			details["old_name"] = current.Name
			details["new_name"] = updated.Name
		}
		if params.Permissions != nil {
			details["old_permissions"] = permissions.Set(current.Permissions).Names()
			details["new_permissions"] = permissions.Set(updated.Permissions).Names()
		}
		details = requesttrace.FromContextOrAnonymous(ctx).Details(details)
		if err := s.repo.Audit(ctx, sess, updated.TenantID, id.UserID, ActionRoleUpdated, details); err != nil {
			return err
		}
		out = mapRole(updated)
		return nil
	})
	return out, err
}

func (s *service) Delete(ctx context.Context, id auth.Identity, roleID uuid.UUID) error {
	return s.runner.WithScope(ctx, id.Scope(), func(sess *persistence.Session) error {
		if err := access.Enforce(ctx, sess, id, s.perms.RequirePermission(permissions.RolesDelete)); err != nil {
			return err
		}

		role, err := s.repo.Get(ctx, sess, roleID)
		if err != nil {
			return mapPersistenceError(err)
		}
		if role.IsAdminRole {
			return ErrAdminRoleDelete
		}

		assigned, err := s.repo.CountAssigned(ctx, sess, roleID)
		if err != nil {
			return err
		}
		if assigned > 0 {
			return ErrRoleInUse
		}

		if err := s.repo.Delete(ctx, sess, roleID); err != nil {
			return mapPersistenceError(err)
		}

		details := requesttrace.FromContextOrAnonymous(ctx).Details(map[string]any{
			"role_id": roleID.String(),
			"name":    role.Name,
		})
		return s.repo.Audit(ctx, sess, role.TenantID, id.UserID, ActionRoleDeleted, details)
	})
}

func (s *service) Catalogue() []permissions.Group {
	return permissions.Catalogue()
}

func mapRole(record persistence.Role) Role {
	return Role{
		ID:            record.ID,
		TenantID:      record.TenantID,
		Name:          record.Name,
		IsAdminRole:   record.IsAdminRole,
		PermissionSet: record.Permissions,
		Permissions:   permissions.Set(record.Permissions).Names(),
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func mapPersistenceError(err error) error {
	switch {
	case errors.Is(err, persistence.ErrRoleNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrRoleConflict):
		return ErrConflict
	case errors.Is(err, persistence.ErrRoleInUse):
		return ErrRoleInUse
	default:
		return err
	}
}
