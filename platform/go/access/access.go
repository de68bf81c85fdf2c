package access

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

var (
	ErrNoRole         = apperr.WithCode(apperr.KindForbiddenRole, "FORBIDDEN_ROLE", "user has no assigned role")
	ErrMissingPerm    = apperr.WithCode(apperr.KindForbiddenPermission, "FORBIDDEN_PERMISSION", "permission denied")
	ErrNotTenantAdmin = apperr.WithCode(apperr.KindForbidden, "FORBIDDEN", "the user does not have admin privileges for this tenant")
	ErrNotSuperadmin  = apperr.WithCode(apperr.KindForbidden, "FORBIDDEN", "superadmin privileges required")
	ErrNoTenant       = apperr.WithCode(apperr.KindForbidden, "FORBIDDEN", "user is not a member of a tenant")
	errProfileMissing = apperr.WithCode(apperr.KindProfileNotFound, "PROFILE_NOT_FOUND", "user profile not found")
)

// Check is a precondition evaluated inside the caller's session before business logic runs.
type Check func(ctx context.Context, s *persistence.Session, id auth.Identity) error

// Enforce runs checks in order and stops at the first failure.
func Enforce(ctx context.Context, s *persistence.Session, id auth.Identity, checks ...Check) error {
	for _, check := range checks {
		if err := check(ctx, s, id); err != nil {
			return err
		}
	}
	return nil
}

// RoleLookup loads a user together with its role.
type RoleLookup interface {
	GetWithRole(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, *persistence.Role, error)
}

// Guard evaluates role-based checks.
type Guard struct {
	users RoleLookup
}

// NewGuard builds a Guard.
func NewGuard(users RoleLookup) *Guard {
	if users == nil {
		panic("access.NewGuard requires users")
	}
	return &Guard{users: users}
}

// RequirePermission allows superadmins, otherwise re-fetches the caller's role and checks the bit.
func (g *Guard) RequirePermission(p permissions.Permission) Check {
	return func(ctx context.Context, s *persistence.Session, id auth.Identity) error {
		if id.Superadmin {
			return nil
		}
		role, err := g.role(ctx, s, id)
		if err != nil {
			return err
		}
		if !permissions.Set(role.Permissions).Has(p) {
			return ErrMissingPerm.WithMessage("user lacks %s permission", p)
		}
		return nil
	}
}

// RequireTenantAdmin allows superadmins and users whose role is flagged as an admin role.
func (g *Guard) RequireTenantAdmin() Check {
	return func(ctx context.Context, s *persistence.Session, id auth.Identity) error {
		if id.Superadmin {
			return nil
		}
		role, err := g.role(ctx, s, id)
		if errors.Is(err, ErrNoRole) || (err == nil && !role.IsAdminRole) {
			return ErrNotTenantAdmin
		}
		return err
	}
}

func (g *Guard) role(ctx context.Context, s *persistence.Session, id auth.Identity) (*persistence.Role, error) {
	_, role, err := g.users.GetWithRole(ctx, s, id.UserID)
	if err != nil {
		if errors.Is(err, persistence.ErrUserNotFound) {
			return nil, errProfileMissing
		}
		return nil, err
	}
	if role == nil {
		return nil, ErrNoRole
	}
	return role, nil
}

// RequireSuperadmin allows only the configured superadmin.
func RequireSuperadmin() Check {
	return func(_ context.Context, _ *persistence.Session, id auth.Identity) error {
		if !id.Superadmin {
			return ErrNotSuperadmin
		}
		return nil
	}
}

// RequireTenantMember allows callers bound to a tenant.
func RequireTenantMember() Check {
	return func(_ context.Context, _ *persistence.Session, id auth.Identity) error {
		if id.TenantID == nil {
			return ErrNoTenant
		}
		return nil
	}
}
