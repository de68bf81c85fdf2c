package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zenGate-Global/tenantgate/platform/go/access"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/entitlements"
	"github.com/zenGate-Global/tenantgate/platform/go/identity"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence/persistencetest"
)

var (
	tenantID = uuid.MustParse("4f1f9a5c-7d3e-4d7e-9c61-0b6f3d2a1e10")
	adminID  = uuid.MustParse("0a9c3c8e-51a4-4f0b-9d77-2c4e8f1b6d01")
	memberID = uuid.MustParse("6b2d7e90-3f1c-4a5e-8b2d-9e0f1a2b3c04")
	adminRID = uuid.MustParse("8d3e1f20-6a7b-4c8d-9e0f-1a2b3c4d5e06")
	viewRID  = uuid.MustParse("9e4f2a31-7b8c-4d9e-8f10-2b3c4d5e6f07")
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func TestMeReturnsRoleSummary(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getWithRoleFn: func(_ context.Context, _ *persistence.Session, id uuid.UUID) (persistence.User, *persistence.Role, error) {
			require.Equal(t, adminID, id)
			return adminUser(), &persistence.Role{ID: adminRID, TenantID: tenantID, Name: "Admin", Permissions: int64(permissions.Of(permissions.UsersRead, permissions.RolesRead)), IsAdminRole: true}, nil
		},
	}
	svc := newTestService(t, repo, &fakeIdentity{})

	user, err := svc.Me(context.Background(), adminIdentity())
	require.NoError(t, err)
	require.Equal(t, "admin@acme.test", user.Email)
	require.NotNil(t, user.Role)
	require.Equal(t, []string{"USERS_READ", "ROLES_READ"}, user.Role.Permissions)
}

func TestMeMissingProfileIsNotFound(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getWithRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.User, *persistence.Role, error) {
			return persistence.User{}, nil, persistence.ErrUserNotFound
		},
	}
	svc := newTestService(t, repo, &fakeIdentity{})

	_, err := svc.Me(context.Background(), adminIdentity())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListIgnoresTenantOverrideForMembers(t *testing.T) {
	t.Parallel()

	other := uuid.New()
	repo := &mockRepository{
		listFn: func(_ context.Context, _ *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error) {
			require.Equal(t, tenantID, params.TenantID)
			require.Equal(t, 10, params.Limit)
			return []persistence.User{adminUser()}, 1, nil
		},
	}
	svc := newTestService(t, repo, &fakeIdentity{})

	result, err := svc.List(context.Background(), adminIdentity(), ListOptions{TenantID: &other, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Len(t, result.Users, 1)
}

func TestListSuperadminCanTargetTenant(t *testing.T) {
	t.Parallel()

	other := uuid.New()
	repo := &mockRepository{
		listFn: func(_ context.Context, _ *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error) {
			require.Equal(t, other, params.TenantID)
			return nil, 0, nil
		},
	}
	svc := newTestService(t, repo, &fakeIdentity{})

	result, err := svc.List(context.Background(), auth.Identity{UserID: uuid.New(), Superadmin: true}, ListOptions{TenantID: &other, Limit: 100})
	require.NoError(t, err)
	require.Empty(t, result.Users)
}

func TestInviteCreatesProfileAndAudits(t *testing.T) {
	t.Parallel()

	invitedID := uuid.New()
	var audited map[string]any
	repo := &mockRepository{
		getRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Role, error) {
			return persistence.Role{ID: viewRID, TenantID: tenantID, Name: "Viewer"}, nil
		},
		createFn: func(_ context.Context, _ *persistence.Session, params persistence.CreateUserParams) (persistence.User, error) {
			require.Equal(t, invitedID, params.ID)
			require.Equal(t, "new@acme.test", params.Email)
			require.Equal(t, tenantID, params.TenantID)
			require.Equal(t, viewRID, params.RoleID)
			require.Nil(t, params.TermsAcceptedAt)
			return persistence.User{ID: params.ID, Email: params.Email, TenantID: &tenantID, RoleID: &viewRID}, nil
		},
		auditFn: func(_ context.Context, _ *persistence.Session, tenant, user uuid.UUID, action string, details map[string]any) error {
			require.Equal(t, tenantID, tenant)
			require.Equal(t, adminID, user)
			require.Equal(t, ActionUserInvited, action)
			audited = details
			return nil
		},
	}
	idp := &fakeIdentity{inviteID: invitedID}
	svc := newTestService(t, repo, idp)

	inv, err := svc.Invite(context.Background(), adminIdentity(), InviteInput{Email: "  New@Acme.test ", RoleID: viewRID})
	require.NoError(t, err)
	require.Equal(t, invitedID, inv.User.ID)
	require.Equal(t, "https://app.test/invite?u="+invitedID.String(), inv.Link)
	require.Equal(t, invitedID.String(), audited["invited_user_id"])
	require.Equal(t, viewRID.String(), audited["role_id"])
	require.Empty(t, idp.deleted)
}

func TestInviteAtUserLimitFailsBeforeProvider(t *testing.T) {
	t.Parallel()

	idp := &fakeIdentity{}
	svc := New(Config{
		Runner:      persistencetest.NewRunner(),
		Repo:        &mockRepository{},
		Permissions: allowAll{},
		Entitlements: denyFeature{
			slug: entitlements.FeatureMaxUsers,
			err:  entitlements.ErrLimitReached.WithMessage("you have reached the limit of %d %s for your plan", 3, "users"),
		},
		Identity: idp,
		Logger:   zaptest.NewLogger(t),
	})

	_, err := svc.Invite(context.Background(), adminIdentity(), InviteInput{Email: "x@acme.test", RoleID: viewRID})
	require.True(t, apperr.IsKind(err, apperr.KindPaymentRequired))
	require.Contains(t, err.Error(), "limit of 3 users")
	require.Zero(t, idp.invites)
}

func TestInviteRoleFromOtherTenantIsRejected(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Role, error) {
			return persistence.Role{ID: viewRID, TenantID: uuid.New()}, nil
		},
	}
	idp := &fakeIdentity{}
	svc := newTestService(t, repo, idp)

	_, err := svc.Invite(context.Background(), adminIdentity(), InviteInput{Email: "x@acme.test", RoleID: viewRID})
	require.ErrorIs(t, err, ErrRoleNotFound)
	require.Zero(t, idp.invites)
}

func TestInviteExistingEmailIsConflict(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Role, error) {
			return persistence.Role{ID: viewRID, TenantID: tenantID}, nil
		},
	}
	svc := newTestService(t, repo, &fakeIdentity{inviteErr: identity.ErrUserExists})

	_, err := svc.Invite(context.Background(), adminIdentity(), InviteInput{Email: "x@acme.test", RoleID: viewRID})
	require.ErrorIs(t, err, ErrConflict)
}

func TestInviteRemovesProviderAccountWhenProfileInsertFails(t *testing.T) {
	t.Parallel()

	invitedID := uuid.New()
	repo := &mockRepository{
		getRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Role, error) {
			return persistence.Role{ID: viewRID, TenantID: tenantID}, nil
		},
		createFn: func(context.Context, *persistence.Session, persistence.CreateUserParams) (persistence.User, error) {
			return persistence.User{}, errors.New("connection reset")
		},
	}
	idp := &fakeIdentity{inviteID: invitedID}
	svc := newTestService(t, repo, idp)

	_, err := svc.Invite(context.Background(), adminIdentity(), InviteInput{Email: "x@acme.test", RoleID: viewRID})
	require.Error(t, err)
	require.Equal(t, []uuid.UUID{invitedID}, idp.deleted)
}

func TestUpdateRoleRejectsSelf(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &mockRepository{}, &fakeIdentity{})

	_, err := svc.UpdateRole(context.Background(), adminIdentity(), adminID, viewRID)
	require.ErrorIs(t, err, ErrSelfRoleChange)
}

func TestUpdateRoleProtectsLastAdmin(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getWithRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.User, *persistence.Role, error) {
			return persistence.User{ID: memberID, TenantID: &tenantID, RoleID: &adminRID}, &persistence.Role{ID: adminRID, TenantID: tenantID, IsAdminRole: true}, nil
		},
		getRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Role, error) {
			return persistence.Role{ID: viewRID, TenantID: tenantID}, nil
		},
		lockAdminsFn: func(context.Context, *persistence.Session, uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{memberID}, nil
		},
	}
	svc := newTestService(t, repo, &fakeIdentity{})

	_, err := svc.UpdateRole(context.Background(), adminIdentity(), memberID, viewRID)
	require.ErrorIs(t, err, ErrLastAdmin)
}

func TestUpdateRoleAuditsOldAndNewRole(t *testing.T) {
	t.Parallel()

	var details map[string]any
	repo := &mockRepository{
		getWithRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.User, *persistence.Role, error) {
			return persistence.User{ID: memberID, TenantID: &tenantID, RoleID: &viewRID}, &persistence.Role{ID: viewRID, TenantID: tenantID}, nil
		},
		getRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Role, error) {
			return persistence.Role{ID: adminRID, TenantID: tenantID, IsAdminRole: true}, nil
		},
		updateRoleFn: func(_ context.Context, _ *persistence.Session, id, roleID, by uuid.UUID) (persistence.User, error) {
			require.Equal(t, memberID, id)
			require.Equal(t, adminRID, roleID)
			require.Equal(t, adminID, by)
			return persistence.User{ID: memberID, Email: "m@acme.test", TenantID: &tenantID, RoleID: &adminRID}, nil
		},
		auditFn: func(_ context.Context, _ *persistence.Session, _, _ uuid.UUID, action string, d map[string]any) error {
			require.Equal(t, ActionUserRoleUpdated, action)
			details = d
			return nil
		},
	}
	svc := newTestService(t, repo, &fakeIdentity{})

	user, err := svc.UpdateRole(context.Background(), adminIdentity(), memberID, adminRID)
	require.NoError(t, err)
	require.Equal(t, &adminRID, user.RoleID)
	require.Equal(t, viewRID.String(), details["old_role_id"])
	require.Equal(t, adminRID.String(), details["new_role_id"])
}

func TestDeleteRejectsSelf(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &mockRepository{}, &fakeIdentity{})
	require.ErrorIs(t, svc.Delete(context.Background(), adminIdentity(), adminID), ErrSelfDelete)
}

func TestDeleteSucceedsWhenProviderFails(t *testing.T) {
	t.Parallel()

	deleted := false
	repo := &mockRepository{
		getWithRoleFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.User, *persistence.Role, error) {
			return persistence.User{ID: memberID, Email: "m@acme.test", TenantID: &tenantID}, &persistence.Role{ID: viewRID, TenantID: tenantID}, nil
		},
		deleteFn: func(context.Context, *persistence.Session, uuid.UUID) error {
			deleted = true
			return nil
		},
		auditFn: func(_ context.Context, _ *persistence.Session, _, _ uuid.UUID, action string, _ map[string]any) error {
			require.Equal(t, ActionUserDeleted, action)
			return nil
		},
	}
	idp := &fakeIdentity{deleteErr: errors.New("provider down")}
	svc := newTestService(t, repo, idp)

	require.NoError(t, svc.Delete(context.Background(), adminIdentity(), memberID))
	require.True(t, deleted)
	require.Equal(t, []uuid.UUID{memberID}, idp.deleted)
}

func TestCompleteInviteRequiresTerms(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &mockRepository{}, &fakeIdentity{})

	err := svc.CompleteInvite(context.Background(), tokenOnlyIdentity(), CompleteInviteInput{Password: "s3cret-pass", TermsAccepted: false})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestCompleteInviteSetsPasswordAndAcceptsTerms(t *testing.T) {
	t.Parallel()

	var acceptedAt time.Time
	repo := &mockRepository{
		getFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.User, error) {
			return persistence.User{ID: memberID, TenantID: &tenantID}, nil
		},
		acceptTermsFn: func(_ context.Context, s *persistence.Session, id uuid.UUID, at time.Time) (persistence.User, error) {
			require.True(t, s.Scope().Superadmin)
			acceptedAt = at
			return persistence.User{ID: id, TermsAcceptedAt: &at}, nil
		},
	}
	idp := &fakeIdentity{}
	svc := newTestService(t, repo, idp)

	err := svc.CompleteInvite(context.Background(), tokenOnlyIdentity(), CompleteInviteInput{Password: "s3cret-pass", TermsAccepted: true})
	require.NoError(t, err)
	require.Equal(t, fixedNow, acceptedAt)
	require.Equal(t, "s3cret-pass", idp.passwords[memberID])
}

func TestCompleteInviteTwiceIsRejected(t *testing.T) {
	t.Parallel()

	accepted := fixedNow
	repo := &mockRepository{
		getFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.User, error) {
			return persistence.User{ID: memberID, TenantID: &tenantID, TermsAcceptedAt: &accepted}, nil
		},
	}
	idp := &fakeIdentity{}
	svc := newTestService(t, repo, idp)

	err := svc.CompleteInvite(context.Background(), tokenOnlyIdentity(), CompleteInviteInput{Password: "s3cret-pass", TermsAccepted: true})
	require.ErrorIs(t, err, ErrAlreadySetUp)
	require.Empty(t, idp.passwords)
}

func TestCompleteInviteWithoutProfile(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.User, error) {
			return persistence.User{}, persistence.ErrUserNotFound
		},
	}
	svc := newTestService(t, repo, &fakeIdentity{})

	err := svc.CompleteInvite(context.Background(), tokenOnlyIdentity(), CompleteInviteInput{Password: "s3cret-pass", TermsAccepted: true})
	require.ErrorIs(t, err, auth.ErrProfileNotFound)
}

func newTestService(t *testing.T, repo *mockRepository, idp *fakeIdentity) Service {
	t.Helper()
	return New(Config{
		Runner:       persistencetest.NewRunner(),
		Repo:         repo,
		Permissions:  allowAll{},
		Entitlements: allowAll{},
		Identity:     idp,
		Logger:       zaptest.NewLogger(t),
		Now:          func() time.Time { return fixedNow },
	})
}

func adminIdentity() auth.Identity {
	return auth.Identity{UserID: adminID, TenantID: &tenantID, Email: "admin@acme.test", Method: auth.MethodBearer, TermsAccepted: true}
}

func tokenOnlyIdentity() auth.Identity {
	return auth.Identity{UserID: memberID, Email: "m@acme.test", Method: auth.MethodTokenOnly}
}

func adminUser() persistence.User {
	return persistence.User{ID: adminID, Email: "admin@acme.test", TenantID: &tenantID, RoleID: &adminRID}
}

type allowAll struct{}

func (allowAll) RequirePermission(permissions.Permission) access.Check { return pass }
func (allowAll) Require(string) access.Check                           { return pass }

type denyFeature struct {
	slug string
	err  error
}

func (d denyFeature) Require(slug string) access.Check {
	if slug != d.slug {
		return pass
	}
	return func(context.Context, *persistence.Session, auth.Identity) error { return d.err }
}

func pass(context.Context, *persistence.Session, auth.Identity) error { return nil }

type fakeIdentity struct {
	inviteID  uuid.UUID
	inviteErr error
	deleteErr error
	invites   int
	deleted   []uuid.UUID
	passwords map[uuid.UUID]string
}

func (f *fakeIdentity) InviteUser(_ context.Context, email string) (identity.InvitedUser, error) {
	f.invites++
	if f.inviteErr != nil {
		return identity.InvitedUser{}, f.inviteErr
	}
	return identity.InvitedUser{ID: f.inviteID, Email: email, Link: "https://app.test/invite?u=" + f.inviteID.String()}, nil
}

func (f *fakeIdentity) SetPassword(_ context.Context, id uuid.UUID, password string) error {
	if f.passwords == nil {
		f.passwords = map[uuid.UUID]string{}
	}
	f.passwords[id] = password
	return nil
}

func (f *fakeIdentity) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type mockRepository struct {
	getFn         func(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error)
	getWithRoleFn func(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, *persistence.Role, error)
	listFn        func(ctx context.Context, s *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error)
	createFn      func(ctx context.Context, s *persistence.Session, params persistence.CreateUserParams) (persistence.User, error)
	getRoleFn     func(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Role, error)
	lockAdminsFn  func(ctx context.Context, s *persistence.Session, tenantID uuid.UUID) ([]uuid.UUID, error)
	updateRoleFn  func(ctx context.Context, s *persistence.Session, id, roleID, updatedBy uuid.UUID) (persistence.User, error)
	acceptTermsFn func(ctx context.Context, s *persistence.Session, id uuid.UUID, at time.Time) (persistence.User, error)
	deleteFn      func(ctx context.Context, s *persistence.Session, id uuid.UUID) error
	auditFn       func(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error
}

func (m *mockRepository) Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error) {
	if m.getFn == nil {
		panic("getFn not configured")
	}
	return m.getFn(ctx, s, id)
}

func (m *mockRepository) GetWithRole(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, *persistence.Role, error) {
	if m.getWithRoleFn == nil {
		panic("getWithRoleFn not configured")
	}
	return m.getWithRoleFn(ctx, s, id)
}

func (m *mockRepository) List(ctx context.Context, s *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error) {
	if m.listFn == nil {
		panic("listFn not configured")
	}
	return m.listFn(ctx, s, params)
}

func (m *mockRepository) Create(ctx context.Context, s *persistence.Session, params persistence.CreateUserParams) (persistence.User, error) {
	if m.createFn == nil {
		panic("createFn not configured")
	}
	return m.createFn(ctx, s, params)
}

func (m *mockRepository) GetRole(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Role, error) {
	if m.getRoleFn == nil {
		panic("getRoleFn not configured")
	}
	return m.getRoleFn(ctx, s, id)
}

func (m *mockRepository) LockAdmins(ctx context.Context, s *persistence.Session, tenantID uuid.UUID) ([]uuid.UUID, error) {
	if m.lockAdminsFn == nil {
		panic("lockAdminsFn not configured")
	}
	return m.lockAdminsFn(ctx, s, tenantID)
}

func (m *mockRepository) UpdateRole(ctx context.Context, s *persistence.Session, id, roleID, updatedBy uuid.UUID) (persistence.User, error) {
	if m.updateRoleFn == nil {
		panic("updateRoleFn not configured")
	}
	return m.updateRoleFn(ctx, s, id, roleID, updatedBy)
}

func (m *mockRepository) AcceptTerms(ctx context.Context, s *persistence.Session, id uuid.UUID, at time.Time) (persistence.User, error) {
	if m.acceptTermsFn == nil {
		panic("acceptTermsFn not configured")
	}
	return m.acceptTermsFn(ctx, s, id, at)
}

func (m *mockRepository) Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error {
	if m.deleteFn == nil {
		panic("deleteFn not configured")
	}
	return m.deleteFn(ctx, s, id)
}

func (m *mockRepository) Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	if m.auditFn == nil {
		panic("auditFn not configured")
	}
	return m.auditFn(ctx, s, tenantID, userID, action, details)
}
