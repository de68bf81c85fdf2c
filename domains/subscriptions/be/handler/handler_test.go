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

	"github.com/zenGate-Global/tenantgate/domains/subscriptions/be/service"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/billing"
	"github.com/zenGate-Global/tenantgate/platform/go/entitlements"
)

func TestListPlansIsPublic(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		listPlansFn: func(context.Context) ([]service.Plan, error) {
			return []service.Plan{{ID: uuid.New(), Name: "Pro", IsActive: true, Entitlements: []service.Entitlement{{FeatureSlug: "records", Type: "METER", Value: 1000}}}}, nil
		},
	}

	r := chi.NewRouter()
	New(svc, zaptest.NewLogger(t)).PublicRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []planResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "METER", body[0].Entitlements[0].EntitlementType)
}

func TestMineRendersUsageMap(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		mineFn: func(context.Context, auth.Identity) (service.Details, error) {
			return service.Details{
				Plan:   service.Plan{Name: "Pro"},
				Status: "active",
				Usage:  []entitlements.MeterUsage{{FeatureSlug: "records", Used: 7, Limit: 100}},
			}, nil
		},
	}

	rec := serve(t, svc, http.MethodGet, "/subscriptions/me", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body detailsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, map[string]int64{"records": 7}, body.Usage)
	require.Nil(t, body.PaymentProviderData)
}

func TestMineWithoutPlanIsNotFound(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		mineFn: func(context.Context, auth.Identity) (service.Details, error) {
			return service.Details{}, service.ErrNoPlan
		},
	}

	rec := serve(t, svc, http.MethodGet, "/subscriptions/me", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckoutReturnsURL(t *testing.T) {
	t.Parallel()

	planID := uuid.New()
	svc := &mockService{
		checkoutFn: func(_ context.Context, _ auth.Identity, input service.CheckoutInput) (billing.CheckoutSession, error) {
			require.Equal(t, planID, input.PlanID)
			return billing.CheckoutSession{ID: "cs_1", URL: "https://checkout.test/cs_1"}, nil
		},
	}

	rec := serve(t, svc, http.MethodPost, "/subscriptions/checkout-session",
		`{"plan_id":"`+planID.String()+`","success_url":"https://app.test/ok","cancel_url":"https://app.test/no"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"checkout_url":"https://checkout.test/cs_1"}`, rec.Body.String())
}

func TestCheckoutValidatesURLs(t *testing.T) {
	t.Parallel()

	rec := serve(t, &mockService{}, http.MethodPost, "/subscriptions/checkout-session",
		`{"plan_id":"`+uuid.NewString()+`","success_url":"nope","cancel_url":"https://app.test/no"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortalNotImplemented(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		portalFn: func(context.Context, auth.Identity, string) (string, error) { return "", billing.ErrPortalUnsupported },
	}

	rec := serve(t, svc, http.MethodPost, "/subscriptions/customer-portal-session", `{"return_url":"https://app.test/billing"}`)
	require.Equal(t, http.StatusNotImplemented, rec.Code)
}

func serve(t *testing.T, svc service.Service, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	New(svc, zaptest.NewLogger(t)).Routes(r)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	tenantID := uuid.New()
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: uuid.New(), TenantID: &tenantID}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type mockService struct {
	listPlansFn func(ctx context.Context) ([]service.Plan, error)
	mineFn      func(ctx context.Context, id auth.Identity) (service.Details, error)
	checkoutFn  func(ctx context.Context, id auth.Identity, input service.CheckoutInput) (billing.CheckoutSession, error)
	portalFn    func(ctx context.Context, id auth.Identity, returnURL string) (string, error)
}

func (m *mockService) ListPlans(ctx context.Context) ([]service.Plan, error) {
	if m.listPlansFn == nil {
		panic("listPlansFn not configured")
	}
	return m.listPlansFn(ctx)
}

func (m *mockService) Mine(ctx context.Context, id auth.Identity) (service.Details, error) {
	if m.mineFn == nil {
		panic("mineFn not configured")
	}
	return m.mineFn(ctx, id)
}

func (m *mockService) Checkout(ctx context.Context, id auth.Identity, input service.CheckoutInput) (billing.CheckoutSession, error) {
	if m.checkoutFn == nil {
		panic("checkoutFn not configured")
	}
	return m.checkoutFn(ctx, id, input)
}

func (m *mockService) PortalSession(ctx context.Context, id auth.Identity, returnURL string) (string, error) {
	if m.portalFn == nil {
		panic("portalFn not configured")
	}
	return m.portalFn(ctx, id, returnURL)
}
