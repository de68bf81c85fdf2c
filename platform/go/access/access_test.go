package access

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

type nopQuerier struct{}

func (nopQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (nopQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unused")
}
func (nopQuerier) QueryRow(context.Context, string, ...any) pgx.Row { panic("unused") }

type fakeRoles struct {
	getWithRoleFn func(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, *persistence.Role, error)
}

func (f *fakeRoles) GetWithRole(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, *persistence.Role, error) {
	if f.getWithRoleFn == nil {
		panic("getWithRoleFn not configured")
	}
	return f.getWithRoleFn(ctx, s, id)
}

func withRole(role *persistence.Role) *fakeRoles {
	return &fakeRoles{getWithRoleFn: func(_ context.Context, _ *persistence.Session, id uuid.UUID) (persistence.User, *persistence.Role, error) {
		return persistence.User{ID: id}, role, nil
	}}
}

func session() *persistence.Session {
	return persistence.NewSession(nopQuerier{}, tenant.Scope{})
}

func member() auth.Identity {
	tenantID := uuid.New()
	return auth.Identity{UserID: uuid.New(), TenantID: &tenantID, TermsAccepted: true}
}

func TestRequirePermission(t *testing.T) {
	t.Parallel()

	editor := &persistence.Role{Name: "Editor", Permissions: int64(permissions.Of(permissions.ItemsRead, permissions.ItemsUpdate))}

	testCases := []struct {
		name  string
		roles *fakeRoles
		id    auth.Identity
		perm  permissions.Permission
		kind  apperr.Kind
	}{
		{name: "granted", roles: withRole(editor), id: member(), perm: permissions.ItemsUpdate},
		{name: "missing bit", roles: withRole(editor), id: member(), perm: permissions.ItemsDelete, kind: apperr.KindForbiddenPermission},
		{name: "no role", roles: withRole(nil), id: member(), perm: permissions.ItemsRead, kind: apperr.KindForbiddenRole},
		{name: "superadmin bypasses lookup", roles: &fakeRoles{}, id: auth.Identity{Superadmin: true}, perm: permissions.UsersDelete},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := NewGuard(tc.roles).RequirePermission(tc.perm)(context.Background(), session(), tc.id)
			if tc.kind == "" {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tc.kind, apperr.KindOf(err))
		})
	}
}

func TestMissingPermissionIsNamed(t *testing.T) {
	t.Parallel()

	err := NewGuard(withRole(&persistence.Role{})).RequirePermission(permissions.RecordsDelete)(context.Background(), session(), member())
	require.ErrorContains(t, err, "RECORDS_DELETE")
}

func TestRequireTenantAdmin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	require.NoError(t, NewGuard(withRole(&persistence.Role{IsAdminRole: true})).RequireTenantAdmin()(ctx, session(), member()))
	require.ErrorIs(t, NewGuard(withRole(&persistence.Role{})).RequireTenantAdmin()(ctx, session(), member()), ErrNotTenantAdmin)
	require.ErrorIs(t, NewGuard(withRole(nil)).RequireTenantAdmin()(ctx, session(), member()), ErrNotTenantAdmin)
}

func TestEnforceStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	var calls []string
	record := func(name string, err error) Check {
		return func(context.Context, *persistence.Session, auth.Identity) error {
			calls = append(calls, name)
			return err
		}
	}

	err := Enforce(context.Background(), session(), member(),
		record("terms", nil),
		record("permission", ErrMissingPerm),
		record("entitlement", nil),
	)
	require.ErrorIs(t, err, ErrMissingPerm)
	require.Equal(t, []string{"terms", "permission"}, calls)
}

func TestRequireSuperadminAndMember(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	require.ErrorIs(t, RequireSuperadmin()(ctx, session(), member()), ErrNotSuperadmin)
	require.NoError(t, RequireSuperadmin()(ctx, session(), auth.Identity{Superadmin: true}))
	require.ErrorIs(t, RequireTenantMember()(ctx, session(), auth.Identity{UserID: uuid.New()}), ErrNoTenant)
	require.NoError(t, RequireTenantMember()(ctx, session(), member()))
}
