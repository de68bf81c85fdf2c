package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zenGate-Global/tenantgate/domains/tenants/be/service"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

func TestOnboardReturnsCreatedTenant(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	svc := &mockService{
		onboardFn: func(_ context.Context, _ auth.Identity, input service.OnboardInput) (service.Tenant, error) {
			require.Equal(t, service.OnboardInput{Name: "Acme", Slug: "acme", TermsAccepted: true}, input)
			return service.Tenant{ID: tenantID, Name: "Acme", Slug: "acme", Billing: service.Billing{Status: "inactive"}}, nil
		},
	}

	rec := serve(t, svc, http.MethodPost, "/onboarding/tenant", `{"name":"Acme","slug":"acme","terms_accepted":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body tenantResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, tenantID, body.ID)
	require.Equal(t, "inactive", body.SubscriptionStatus)
}

func TestOnboardWithoutTermsIsBadRequest(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		onboardFn: func(context.Context, auth.Identity, service.OnboardInput) (service.Tenant, error) {
			return service.Tenant{}, service.ErrTermsRequired
		},
	}

	rec := serve(t, svc, http.MethodPost, "/onboarding/tenant", `{"name":"Acme","slug":"acme"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem httpx.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "You must accept the Terms and Conditions to proceed.", problem.Detail)
}

func TestUpdateMineSlugByTenantAdminIsForbidden(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		updateMineFn: func(_ context.Context, _ auth.Identity, input service.UpdateInput) (service.Tenant, error) {
			require.NotNil(t, input.Slug)
			return service.Tenant{}, service.ErrSlugChange
		},
	}

	rec := serve(t, svc, http.MethodPut, "/tenants/me", `{"slug":"renamed"}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogoUploadURL(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		logoUploadURLFn: func(_ context.Context, _ auth.Identity, contentType string) (service.LogoUpload, error) {
			require.Equal(t, "image/png", contentType)
			return service.LogoUpload{UploadURL: "https://bucket.test/put", Method: "PUT", LogoPath: "tenants/acme-12345678/logos/x.png"}, nil
		},
	}

	rec := serve(t, svc, http.MethodPost, "/tenants/me/logo-upload-url", `{"content_type":"image/png"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body logoUploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "PUT", body.Method)
	require.Equal(t, "tenants/acme-12345678/logos/x.png", body.LogoPath)
}

func TestSuperadminListCapsLimit(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		listFn: func(_ context.Context, _ auth.Identity, opts service.ListOptions) (service.ListResult, error) {
			require.Equal(t, 1000, opts.Limit)
			require.Equal(t, 20, opts.Skip)
			return service.ListResult{Tenants: []service.Tenant{{ID: uuid.New()}}, Total: 21, Skip: opts.Skip, Limit: opts.Limit}, nil
		},
	}

	rec := serve(t, svc, http.MethodGet, "/superadmin/tenants?skip=20&limit=5000", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	require.Equal(t, 21, body.Total)
}

func TestAssignPlanRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	rec := serve(t, &mockService{}, http.MethodPost, "/superadmin/tenants/"+uuid.NewString()+"/assign-plan",
		`{"plan_id":"`+uuid.NewString()+`","subscription_status":"canceled"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignPlanUnknownPlanIsNotFound(t *testing.T) {
	t.Parallel()

	planID := uuid.New()
	svc := &mockService{
		assignPlanFn: func(_ context.Context, _ auth.Identity, _ uuid.UUID, input service.AssignPlanInput) (service.Tenant, error) {
			require.Equal(t, planID, input.PlanID)
			require.Empty(t, input.Status)
			return service.Tenant{}, service.ErrPlanNotFound
		},
	}

	rec := serve(t, svc, http.MethodPost, "/superadmin/tenants/"+uuid.NewString()+"/assign-plan", `{"plan_id":"`+planID.String()+`"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSuperadminDelete(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	svc := &mockService{
		deleteFn: func(_ context.Context, _ auth.Identity, id uuid.UUID) error {
			require.Equal(t, tenantID, id)
			return nil
		},
	}

	rec := serve(t, svc, http.MethodDelete, "/superadmin/tenants/"+tenantID.String(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func serve(t *testing.T, svc service.Service, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	h := New(svc, zaptest.NewLogger(t))
	h.OnboardingRoutes(r)
	h.Routes(r)
	h.SuperadminRoutes(r)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: uuid.New(), Superadmin: true}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type mockService struct {
	onboardFn       func(ctx context.Context, id auth.Identity, input service.OnboardInput) (service.Tenant, error)
	getMineFn       func(ctx context.Context, id auth.Identity) (service.Tenant, error)
	updateMineFn    func(ctx context.Context, id auth.Identity, input service.UpdateInput) (service.Tenant, error)
	logoUploadURLFn func(ctx context.Context, id auth.Identity, contentType string) (service.LogoUpload, error)
	listFn          func(ctx context.Context, id auth.Identity, opts service.ListOptions) (service.ListResult, error)
	getFn           func(ctx context.Context, id auth.Identity, tenantID uuid.UUID) (service.Tenant, error)
	updateFn        func(ctx context.Context, id auth.Identity, tenantID uuid.UUID, input service.UpdateInput) (service.Tenant, error)
	deleteFn        func(ctx context.Context, id auth.Identity, tenantID uuid.UUID) error
	assignPlanFn    func(ctx context.Context, id auth.Identity, tenantID uuid.UUID, input service.AssignPlanInput) (service.Tenant, error)
}

func (m *mockService) Onboard(ctx context.Context, id auth.Identity, input service.OnboardInput) (service.Tenant, error) {
	if m.onboardFn == nil {
		panic("onboardFn not configured")
	}
	return m.onboardFn(ctx, id, input)
}

func (m *mockService) GetMine(ctx context.Context, id auth.Identity) (service.Tenant, error) {
	if m.getMineFn == nil {
		panic("getMineFn not configured")
	}
	return m.getMineFn(ctx, id)
}

func (m *mockService) UpdateMine(ctx context.Context, id auth.Identity, input service.UpdateInput) (service.Tenant, error) {
	if m.updateMineFn == nil {
		panic("updateMineFn not configured")
	}
	return m.updateMineFn(ctx, id, input)
}

func (m *mockService) LogoUploadURL(ctx context.Context, id auth.Identity, contentType string) (service.LogoUpload, error) {
	if m.logoUploadURLFn == nil {
		panic("logoUploadURLFn not configured")
	}
	return m.logoUploadURLFn(ctx, id, contentType)
}

func (m *mockService) List(ctx context.Context, id auth.Identity, opts service.ListOptions) (service.ListResult, error) {
	if m.listFn == nil {
		panic("listFn not configured")
	}
	return m.listFn(ctx, id, opts)
}

func (m *mockService) Get(ctx context.Context, id auth.Identity, tenantID uuid.UUID) (service.Tenant, error) {
	if m.getFn == nil {
		panic("getFn not configured")
	}
	return m.getFn(ctx, id, tenantID)
}

func (m *mockService) Update(ctx context.Context, id auth.Identity, tenantID uuid.UUID, input service.UpdateInput) (service.Tenant, error) {
	if m.updateFn == nil {
		panic("updateFn not configured")
	}
	return m.updateFn(ctx, id, tenantID, input)
}

func (m *mockService) Delete(ctx context.Context, id auth.Identity, tenantID uuid.UUID) error {
	if m.deleteFn == nil {
		panic("deleteFn not configured")
	}
	return m.deleteFn(ctx, id, tenantID)
}

func (m *mockService) AssignPlan(ctx context.Context, id auth.Identity, tenantID uuid.UUID, input service.AssignPlanInput) (service.Tenant, error) {
	if m.assignPlanFn == nil {
		panic("assignPlanFn not configured")
	}
	return m.assignPlanFn(ctx, id, tenantID, input)
}
