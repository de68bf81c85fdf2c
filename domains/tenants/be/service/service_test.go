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
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/identity"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence/persistencetest"
	"github.com/zenGate-Global/tenantgate/platform/go/storage"
	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

var (
	tenantID = uuid.MustParse("4f1f9a5c-7d3e-4d7e-9c61-0b6f3d2a1e10")
	adminID  = uuid.MustParse("0a9c3c8e-51a4-4f0b-9d77-2c4e8f1b6d01")
	planID   = uuid.MustParse("2c7d9e10-4b5a-4c6d-8e7f-9a0b1c2d3e08")
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func TestOnboardCreatesTenantRoleAndProfile(t *testing.T) {
	t.Parallel()

	var (
		createdTenant uuid.UUID
		createdRole   uuid.UUID
		adminSet      bool
		action        string
	)
	repo := &mockRepository{
		getUserFn: func(_ context.Context, s *persistence.Session, _ uuid.UUID) (persistence.User, error) {
			require.True(t, s.Scope().Superadmin)
			return persistence.User{}, persistence.ErrUserNotFound
		},
		createFn: func(_ context.Context, s *persistence.Session, params persistence.CreateTenantParams) (persistence.Tenant, error) {
			require.True(t, s.Scope().Superadmin)
			require.Equal(t, "acme-corp", params.Slug)
			require.Equal(t, "Acme Corp", params.Name)
			createdTenant = params.ID
			return persistence.Tenant{ID: params.ID, Name: params.Name, Slug: params.Slug, Billing: persistence.BillingState{Status: persistence.SubscriptionInactive}}, nil
		},
		createRoleFn: func(_ context.Context, _ *persistence.Session, params persistence.CreateRoleParams) (persistence.Role, error) {
			require.Equal(t, createdTenant, params.TenantID)
			require.Equal(t, AdminRoleName, params.Name)
			require.True(t, params.IsAdminRole)
			require.Equal(t, int64(permissions.TenantAdmin), params.Permissions)
			createdRole = uuid.New()
			return persistence.Role{ID: createdRole, TenantID: params.TenantID, Name: params.Name, IsAdminRole: true}, nil
		},
		createUserFn: func(_ context.Context, _ *persistence.Session, params persistence.CreateUserParams) (persistence.User, error) {
			require.Equal(t, adminID, params.ID)
			require.Equal(t, "founder@acme.test", params.Email)
			require.Equal(t, createdTenant, params.TenantID)
			require.Equal(t, createdRole, params.RoleID)
			require.NotNil(t, params.TermsAcceptedAt)
			require.Equal(t, fixedNow, *params.TermsAcceptedAt)
			return persistence.User{ID: params.ID, Email: params.Email}, nil
		},
		setAdminUserFn: func(_ context.Context, _ *persistence.Session, id, userID uuid.UUID) error {
			require.Equal(t, createdTenant, id)
			require.Equal(t, adminID, userID)
			adminSet = true
			return nil
		},
		auditFn: func(_ context.Context, _ *persistence.Session, _, _ uuid.UUID, a string, _ map[string]any) error {
			action = a
			return nil
		},
	}
	runner := persistencetest.NewRunner()
	svc := newTestService(t, runner, repo, nil)

	out, err := svc.Onboard(context.Background(), tokenOnlyIdentity(), OnboardInput{Name: " Acme Corp ", Slug: "Acme-Corp", TermsAccepted: true})
	require.NoError(t, err)
	require.Equal(t, createdTenant, out.ID)
	require.Equal(t, &adminID, out.AdminUserID)
	require.Equal(t, persistence.SubscriptionInactive, out.Billing.Status)
	require.True(t, adminSet)
	require.Equal(t, ActionTenantCreated, action)
	require.Equal(t, []tenant.Scope{tenant.ForUser(adminID, uuid.Nil)}, runner.Scopes())
	require.Equal(t, 1, runner.Commits())
}

func TestOnboardRequiresTerms(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, persistencetest.NewRunner(), &mockRepository{}, nil)
	_, err := svc.Onboard(context.Background(), tokenOnlyIdentity(), OnboardInput{Name: "Acme", Slug: "acme", TermsAccepted: false})
	require.ErrorIs(t, err, ErrTermsRequired)
}

func TestOnboardRejectsExistingTenant(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, persistencetest.NewRunner(), &mockRepository{}, nil)
	id := tokenOnlyIdentity()
	id.TenantID = &tenantID

	_, err := svc.Onboard(context.Background(), id, OnboardInput{Name: "Acme", Slug: "acme", TermsAccepted: true})
	require.ErrorIs(t, err, ErrAlreadyOnboarded)
}

func TestOnboardRejectsExistingProfile(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getUserFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.User, error) {
			return persistence.User{ID: adminID}, nil
		},
	}
	runner := persistencetest.NewRunner()
	svc := newTestService(t, runner, repo, nil)

	_, err := svc.Onboard(context.Background(), tokenOnlyIdentity(), OnboardInput{Name: "Acme", Slug: "acme", TermsAccepted: true})
	require.ErrorIs(t, err, ErrAlreadyOnboarded)
	require.Equal(t, 1, runner.Rollbacks())
}

func TestOnboardSlugConflict(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getUserFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.User, error) {
			return persistence.User{}, persistence.ErrUserNotFound
		},
		createFn: func(context.Context, *persistence.Session, persistence.CreateTenantParams) (persistence.Tenant, error) {
			return persistence.Tenant{}, persistence.ErrTenantConflict
		},
	}
	svc := newTestService(t, persistencetest.NewRunner(), repo, nil)

	_, err := svc.Onboard(context.Background(), tokenOnlyIdentity(), OnboardInput{Name: "Acme", Slug: "acme", TermsAccepted: true})
	require.ErrorIs(t, err, ErrSlugConflict)
}

func TestOnboardInvalidSlug(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, persistencetest.NewRunner(), &mockRepository{}, nil)
	_, err := svc.Onboard(context.Background(), tokenOnlyIdentity(), OnboardInput{Name: "Acme", Slug: "no spaces!", TermsAccepted: true})
	require.Error(t, err)
}

func TestGetMineSignsLogo(t *testing.T) {
	t.Parallel()

	logo := tenant.BuildBasePrefix("acme", tenantID) + "logos/a.png"
	repo := &mockRepository{
		getFn: func(_ context.Context, _ *persistence.Session, id uuid.UUID) (persistence.Tenant, error) {
			require.Equal(t, tenantID, id)
			return persistence.Tenant{ID: tenantID, Name: "Acme", Slug: "acme", LogoPath: &logo}, nil
		},
	}
	presigner := &fakePresigner{}
	svc := newTestService(t, persistencetest.NewRunner(), repo, presigner)

	out, err := svc.GetMine(context.Background(), adminIdentity())
	require.NoError(t, err)
	require.NotNil(t, out.LogoURL)
	require.Equal(t, "https://bucket.test/"+logo+"?sig=get", *out.LogoURL)
}

func TestGetMineKeepsTenantWhenSigningFails(t *testing.T) {
	t.Parallel()

	logo := tenant.BuildBasePrefix("acme", tenantID) + "logos/a.png"
	repo := &mockRepository{
		getFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Tenant, error) {
			return persistence.Tenant{ID: tenantID, Slug: "acme", LogoPath: &logo}, nil
		},
	}
	svc := newTestService(t, persistencetest.NewRunner(), repo, &fakePresigner{err: errors.New("no credentials")})

	out, err := svc.GetMine(context.Background(), adminIdentity())
	require.NoError(t, err)
	require.Nil(t, out.LogoURL)
	require.Equal(t, &logo, out.LogoPath)
}

func TestGetMineRequiresTenantAdmin(t *testing.T) {
	t.Parallel()

	svc := New(Config{
		Runner:   persistencetest.NewRunner(),
		Repo:     &mockRepository{},
		Admins:   denyAdmins{},
		Identity: &fakeIdentity{},
		Logger:   zaptest.NewLogger(t),
	})

	_, err := svc.GetMine(context.Background(), adminIdentity())
	require.ErrorIs(t, err, access.ErrNotTenantAdmin)
}

func TestUpdateMineSlugRequiresSuperadmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, persistencetest.NewRunner(), &mockRepository{}, nil)
	slug := "new-slug"

	_, err := svc.UpdateMine(context.Background(), adminIdentity(), UpdateInput{Slug: &slug})
	require.ErrorIs(t, err, ErrSlugChange)
}

func TestUpdateMineRejectsForeignLogoPath(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getForUpdateFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Tenant, error) {
			return persistence.Tenant{ID: tenantID, Slug: "acme"}, nil
		},
	}
	svc := newTestService(t, persistencetest.NewRunner(), repo, nil)
	foreign := tenant.BuildBasePrefix("other", uuid.New()) + "logos/a.png"

	_, err := svc.UpdateMine(context.Background(), adminIdentity(), UpdateInput{LogoPath: &foreign})
	require.ErrorIs(t, err, ErrLogoPath)
}

func TestUpdateMineStoresOwnedLogoAndAudits(t *testing.T) {
	t.Parallel()

	logo := tenant.BuildBasePrefix("acme", tenantID) + "logos/b.webp"
	name := "Acme Industries"
	var changes map[string]any
	repo := &mockRepository{
		getForUpdateFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Tenant, error) {
			return persistence.Tenant{ID: tenantID, Slug: "acme"}, nil
		},
		updateFn: func(_ context.Context, _ *persistence.Session, id uuid.UUID, params persistence.UpdateTenantParams) (persistence.Tenant, error) {
			require.Equal(t, tenantID, id)
			require.Nil(t, params.Slug)
			require.Equal(t, logo, *params.LogoPath)
			require.Equal(t, adminID, params.UpdatedBy)
			return persistence.Tenant{ID: tenantID, Name: *params.Name, Slug: "acme", LogoPath: params.LogoPath}, nil
		},
		auditFn: func(_ context.Context, _ *persistence.Session, _, _ uuid.UUID, action string, details map[string]any) error {
			require.Equal(t, ActionTenantUpdated, action)
			changes, _ = details["changes"].(map[string]any)
			return nil
		},
	}
	svc := newTestService(t, persistencetest.NewRunner(), repo, nil)

	out, err := svc.UpdateMine(context.Background(), adminIdentity(), UpdateInput{Name: &name, LogoPath: &logo})
	require.NoError(t, err)
	require.Equal(t, name, out.Name)
	require.Nil(t, out.LogoURL)
	require.Equal(t, name, changes["name"])
	require.Equal(t, logo, changes["logo_path"])
}

func TestLogoUploadURLUsesTenantPrefix(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Tenant, error) {
			return persistence.Tenant{ID: tenantID, Slug: "acme"}, nil
		},
	}
	presigner := &fakePresigner{}
	svc := newTestService(t, persistencetest.NewRunner(), repo, presigner)

	upload, err := svc.LogoUploadURL(context.Background(), adminIdentity(), "image/png")
	require.NoError(t, err)
	require.Equal(t, "PUT", upload.Method)
	require.True(t, storage.OwnedBy(upload.LogoPath, "acme", tenantID))
	require.Equal(t, "image/png", presigner.contentType)
	require.Contains(t, upload.UploadURL, upload.LogoPath)
}

func TestLogoUploadURLRejectsContentType(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, persistencetest.NewRunner(), &mockRepository{}, &fakePresigner{})
	_, err := svc.LogoUploadURL(context.Background(), adminIdentity(), "application/pdf")
	require.ErrorIs(t, err, ErrLogoContentType)
}

func TestLogoUploadURLWithoutStorage(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, persistencetest.NewRunner(), &mockRepository{}, nil)
	_, err := svc.LogoUploadURL(context.Background(), adminIdentity(), "image/png")
	require.ErrorIs(t, err, ErrStorageDisabled)
}

func TestSuperadminEndpointsRejectTenantUsers(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, persistencetest.NewRunner(), &mockRepository{}, nil)

	_, err := svc.List(context.Background(), adminIdentity(), ListOptions{Limit: 10})
	require.ErrorIs(t, err, access.ErrNotSuperadmin)
	err = svc.Delete(context.Background(), adminIdentity(), tenantID)
	require.ErrorIs(t, err, access.ErrNotSuperadmin)
}

func TestDeleteRemovesIdentityAccounts(t *testing.T) {
	t.Parallel()

	members := []persistence.User{{ID: adminID}, {ID: uuid.New()}}
	var deletedTenant uuid.UUID
	repo := &mockRepository{
		getForUpdateFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Tenant, error) {
			return persistence.Tenant{ID: tenantID}, nil
		},
		listUsersFn: func(_ context.Context, _ *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error) {
			require.Equal(t, tenantID, params.TenantID)
			if params.Skip > 0 {
				return nil, len(members), nil
			}
			return members, len(members), nil
		},
		deleteFn: func(_ context.Context, _ *persistence.Session, id uuid.UUID) error {
			deletedTenant = id
			return nil
		},
	}
	idp := &fakeIdentity{failFor: map[uuid.UUID]error{adminID: errors.New("provider down")}}
	svc := New(Config{
		Runner:   persistencetest.NewRunner(),
		Repo:     repo,
		Admins:   allowAdmins{},
		Identity: idp,
		Logger:   zaptest.NewLogger(t),
	})

	require.NoError(t, svc.Delete(context.Background(), superadminIdentity(), tenantID))
	require.Equal(t, tenantID, deletedTenant)
	require.ElementsMatch(t, []uuid.UUID{adminID, members[1].ID}, idp.deleted)
}

func TestDeleteMissingTenant(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getForUpdateFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Tenant, error) {
			return persistence.Tenant{}, persistence.ErrTenantNotFound
		},
	}
	idp := &fakeIdentity{}
	svc := New(Config{Runner: persistencetest.NewRunner(), Repo: repo, Admins: allowAdmins{}, Identity: idp})

	require.ErrorIs(t, svc.Delete(context.Background(), superadminIdentity(), tenantID), ErrNotFound)
	require.Empty(t, idp.deleted)
}

func TestAssignPlanActivatesAndKeepsProviderIDs(t *testing.T) {
	t.Parallel()

	customer := "cus_123"
	ends := fixedNow.Add(30 * 24 * time.Hour)
	repo := &mockRepository{
		getPlanFn: func(_ context.Context, _ *persistence.Session, id uuid.UUID) (persistence.Plan, error) {
			return persistence.Plan{ID: id, Name: "Pro"}, nil
		},
		getForUpdateFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Tenant, error) {
			return persistence.Tenant{ID: tenantID, Billing: persistence.BillingState{Status: persistence.SubscriptionInactive, ExternalCustomerID: &customer}}, nil
		},
		updateBillingFn: func(_ context.Context, _ *persistence.Session, id uuid.UUID, state persistence.BillingState) (persistence.Tenant, error) {
			require.Equal(t, planID, *state.PlanID)
			require.Equal(t, persistence.SubscriptionActive, state.Status)
			require.Equal(t, fixedNow, *state.CurrentPeriodStartsAt)
			require.Equal(t, ends, *state.CurrentPeriodEndsAt)
			require.Equal(t, &customer, state.ExternalCustomerID)
			return persistence.Tenant{ID: id, Billing: state}, nil
		},
		auditFn: func(_ context.Context, _ *persistence.Session, _, _ uuid.UUID, action string, details map[string]any) error {
			require.Equal(t, ActionTenantPlanAssigned, action)
			require.Equal(t, "Pro", details["plan_name"])
			return nil
		},
	}
	svc := newTestService(t, persistencetest.NewRunner(), repo, nil)

	out, err := svc.AssignPlan(context.Background(), superadminIdentity(), tenantID, AssignPlanInput{PlanID: planID, CurrentPeriodEndsAt: &ends})
	require.NoError(t, err)
	require.Equal(t, persistence.SubscriptionActive, out.Billing.Status)
}

func TestAssignPlanUnknownPlan(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		getPlanFn: func(context.Context, *persistence.Session, uuid.UUID) (persistence.Plan, error) {
			return persistence.Plan{}, persistence.ErrPlanNotFound
		},
	}
	svc := newTestService(t, persistencetest.NewRunner(), repo, nil)

	_, err := svc.AssignPlan(context.Background(), superadminIdentity(), tenantID, AssignPlanInput{PlanID: planID})
	require.ErrorIs(t, err, ErrPlanNotFound)
}

func TestAssignPlanRejectsCanceledStatus(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, persistencetest.NewRunner(), &mockRepository{}, nil)
	_, err := svc.AssignPlan(context.Background(), superadminIdentity(), tenantID, AssignPlanInput{PlanID: planID, Status: persistence.SubscriptionCanceled})
	require.Error(t, err)
}

func newTestService(t *testing.T, runner persistence.Runner, repo *mockRepository, presigner storage.Presigner) Service {
	t.Helper()
	return New(Config{
		Runner:    runner,
		Repo:      repo,
		Admins:    allowAdmins{},
		Identity:  &fakeIdentity{},
		Presigner: presigner,
		Logger:    zaptest.NewLogger(t),
		Now:       func() time.Time { return fixedNow },
	})
}

func adminIdentity() auth.Identity {
	return auth.Identity{UserID: adminID, TenantID: &tenantID, Email: "admin@acme.test", Method: auth.MethodBearer, TermsAccepted: true}
}

func tokenOnlyIdentity() auth.Identity {
	return auth.Identity{UserID: adminID, Email: "Founder@Acme.test", Method: auth.MethodTokenOnly}
}

func superadminIdentity() auth.Identity {
	return auth.Identity{UserID: uuid.New(), Superadmin: true, Method: auth.MethodBearer}
}

type allowAdmins struct{}

func (allowAdmins) RequireTenantAdmin() access.Check {
	return func(context.Context, *persistence.Session, auth.Identity) error { return nil }
}

type denyAdmins struct{}

func (denyAdmins) RequireTenantAdmin() access.Check {
	return func(context.Context, *persistence.Session, auth.Identity) error { return access.ErrNotTenantAdmin }
}

type fakePresigner struct {
	err         error
	contentType string
}

func (f *fakePresigner) PresignPut(_ context.Context, loc storage.ObjectLocation, contentType string) (storage.PresignedRequest, error) {
	if f.err != nil {
		return storage.PresignedRequest{}, f.err
	}
	f.contentType = contentType
	return storage.PresignedRequest{URL: "https://bucket.test/" + loc.FullPath + "?sig=put", Method: "PUT", Path: loc.FullPath, ExpiresAt: fixedNow.Add(15 * time.Minute)}, nil
}

func (f *fakePresigner) PresignGet(_ context.Context, loc storage.ObjectLocation) (storage.PresignedRequest, error) {
	if f.err != nil {
		return storage.PresignedRequest{}, f.err
	}
	return storage.PresignedRequest{URL: "https://bucket.test/" + loc.FullPath + "?sig=get", Method: "GET", Path: loc.FullPath}, nil
}

func (f *fakePresigner) Bucket() string { return "tenant-assets" }

type fakeIdentity struct {
	failFor map[uuid.UUID]error
	deleted []uuid.UUID
}

func (f *fakeIdentity) InviteUser(context.Context, string) (identity.InvitedUser, error) {
	panic("InviteUser not expected")
}

func (f *fakeIdentity) SetPassword(context.Context, uuid.UUID, string) error {
	panic("SetPassword not expected")
}

func (f *fakeIdentity) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.failFor[id]
}

type mockRepository struct {
	createFn        func(ctx context.Context, s *persistence.Session, params persistence.CreateTenantParams) (persistence.Tenant, error)
	getFn           func(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error)
	getForUpdateFn  func(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error)
	listFn          func(ctx context.Context, s *persistence.Session, params persistence.ListTenantsParams) ([]persistence.Tenant, int, error)
	updateFn        func(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateTenantParams) (persistence.Tenant, error)
	updateBillingFn func(ctx context.Context, s *persistence.Session, id uuid.UUID, state persistence.BillingState) (persistence.Tenant, error)
	setAdminUserFn  func(ctx context.Context, s *persistence.Session, id, userID uuid.UUID) error
	deleteFn        func(ctx context.Context, s *persistence.Session, id uuid.UUID) error
	createRoleFn    func(ctx context.Context, s *persistence.Session, params persistence.CreateRoleParams) (persistence.Role, error)
	getUserFn       func(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error)
	createUserFn    func(ctx context.Context, s *persistence.Session, params persistence.CreateUserParams) (persistence.User, error)
	listUsersFn     func(ctx context.Context, s *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error)
	getPlanFn       func(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Plan, error)
	auditFn         func(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error
}

func (m *mockRepository) Create(ctx context.Context, s *persistence.Session, params persistence.CreateTenantParams) (persistence.Tenant, error) {
	if m.createFn == nil {
		panic("createFn not configured")
	}
	return m.createFn(ctx, s, params)
}

func (m *mockRepository) Get(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error) {
	if m.getFn == nil {
		panic("getFn not configured")
	}
	return m.getFn(ctx, s, id)
}

func (m *mockRepository) GetForUpdate(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Tenant, error) {
	if m.getForUpdateFn == nil {
		panic("getForUpdateFn not configured")
	}
	return m.getForUpdateFn(ctx, s, id)
}

func (m *mockRepository) List(ctx context.Context, s *persistence.Session, params persistence.ListTenantsParams) ([]persistence.Tenant, int, error) {
	if m.listFn == nil {
		panic("listFn not configured")
	}
	return m.listFn(ctx, s, params)
}

func (m *mockRepository) Update(ctx context.Context, s *persistence.Session, id uuid.UUID, params persistence.UpdateTenantParams) (persistence.Tenant, error) {
	if m.updateFn == nil {
		panic("updateFn not configured")
	}
	return m.updateFn(ctx, s, id, params)
}

func (m *mockRepository) UpdateBilling(ctx context.Context, s *persistence.Session, id uuid.UUID, state persistence.BillingState) (persistence.Tenant, error) {
	if m.updateBillingFn == nil {
		panic("updateBillingFn not configured")
	}
	return m.updateBillingFn(ctx, s, id, state)
}

func (m *mockRepository) SetAdminUser(ctx context.Context, s *persistence.Session, id, userID uuid.UUID) error {
	if m.setAdminUserFn == nil {
		panic("setAdminUserFn not configured")
	}
	return m.setAdminUserFn(ctx, s, id, userID)
}

func (m *mockRepository) Delete(ctx context.Context, s *persistence.Session, id uuid.UUID) error {
	if m.deleteFn == nil {
		panic("deleteFn not configured")
	}
	return m.deleteFn(ctx, s, id)
}

func (m *mockRepository) CreateRole(ctx context.Context, s *persistence.Session, params persistence.CreateRoleParams) (persistence.Role, error) {
	if m.createRoleFn == nil {
		panic("createRoleFn not configured")
	}
	return m.createRoleFn(ctx, s, params)
}

func (m *mockRepository) GetUser(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.User, error) {
	if m.getUserFn == nil {
		panic("getUserFn not configured")
	}
	return m.getUserFn(ctx, s, id)
}

func (m *mockRepository) CreateUser(ctx context.Context, s *persistence.Session, params persistence.CreateUserParams) (persistence.User, error) {
	if m.createUserFn == nil {
		panic("createUserFn not configured")
	}
	return m.createUserFn(ctx, s, params)
}

func (m *mockRepository) ListUsers(ctx context.Context, s *persistence.Session, params persistence.ListUsersParams) ([]persistence.User, int, error) {
	if m.listUsersFn == nil {
		panic("listUsersFn not configured")
	}
	return m.listUsersFn(ctx, s, params)
}

func (m *mockRepository) GetPlan(ctx context.Context, s *persistence.Session, id uuid.UUID) (persistence.Plan, error) {
	if m.getPlanFn == nil {
		panic("getPlanFn not configured")
	}
	return m.getPlanFn(ctx, s, id)
}

func (m *mockRepository) Audit(ctx context.Context, s *persistence.Session, tenantID, userID uuid.UUID, action string, details map[string]any) error {
	if m.auditFn == nil {
		panic("auditFn not configured")
	}
	return m.auditFn(ctx, s, tenantID, userID, action, details)
}
