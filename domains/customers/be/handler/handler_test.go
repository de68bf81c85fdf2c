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

	"github.com/zenGate-Global/tenantgate/domains/customers/be/service"
	customersapi "github.com/zenGate-Global/tenantgate/generated/go/customers"
	"github.com/zenGate-Global/tenantgate/platform/go/apperr"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
)

var tenantID = uuid.MustParse("8c1e1d7a-5a55-4f0b-9a43-1f4f3b0f0a01")

func TestCreateCustomerReturnsCreated(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	svc := &mockService{
		createFn: func(_ context.Context, _ auth.Identity, input service.CreateInput) (service.Customer, error) {
			require.Equal(t, "Buyer", input.Name)
			require.NotNil(t, input.Email)
			require.Equal(t, "buyer@example.com", *input.Email)
			require.Equal(t, "gold", input.Data["tier"])
			return service.Customer{ID: customerID, TenantID: tenantID, Name: input.Name, Email: input.Email, Data: input.Data}, nil
		},
	}

	rec := serve(t, svc, http.MethodPost, "/customers", `{"name":"Buyer","email":"buyer@example.com","customer_data":{"tier":"gold"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/api/v1/customers/"+customerID.String(), rec.Header().Get("Location"))

	var body customersapi.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, tenantID, body.TenantId)
	require.Equal(t, "gold", body.CustomerData["tier"])
}

func TestCreateCustomerWithoutData(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		createFn: func(_ context.Context, _ auth.Identity, input service.CreateInput) (service.Customer, error) {
			require.Nil(t, input.Data)
			require.Nil(t, input.Email)
			return service.Customer{ID: uuid.New(), Name: input.Name, Data: map[string]any{}}, nil
		},
	}

	rec := serve(t, svc, http.MethodPost, "/customers", `{"name":"Buyer"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"customer_data":{}`)
}

func TestCreateCustomerRequiresName(t *testing.T) {
	t.Parallel()

	rec := serve(t, &mockService{}, http.MethodPost, "/customers", `{"email":"buyer@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"name"`)
}

func TestCreateCustomerMissingBody(t *testing.T) {
	t.Parallel()

	h := New(&mockService{}, zaptest.NewLogger(t))
	resp, err := h.CreateCustomer(context.Background(), customersapi.CreateCustomerRequestObject{})
	require.NoError(t, err)

	problem, ok := resp.(customersapi.CreateCustomerdefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, problem.StatusCode)
}

func TestCreateCustomerConflict(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		createFn: func(context.Context, auth.Identity, service.CreateInput) (service.Customer, error) {
			return service.Customer{}, service.ErrCustomerConflict
		},
	}

	rec := serve(t, svc, http.MethodPost, "/customers", `{"name":"Buyer","email":"buyer@example.com"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "CUSTOMER_EXISTS")
}

func TestUpdateCustomerBlankEmail(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	svc := &mockService{
		updateFn: func(_ context.Context, _ auth.Identity, id uuid.UUID, input service.UpdateInput) (service.Customer, error) {
			require.Equal(t, customerID, id)
			require.Nil(t, input.Name)
			require.NotNil(t, input.Email)
			require.Empty(t, *input.Email)
			return service.Customer{ID: id, Name: "Buyer", Data: map[string]any{}}, nil
		},
	}

	rec := serve(t, svc, http.MethodPatch, "/customers/"+customerID.String(), `{"email":""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"email":null`)
}

func TestUpdateCustomerValidationProblem(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		updateFn: func(context.Context, auth.Identity, uuid.UUID, service.UpdateInput) (service.Customer, error) {
			return service.Customer{}, apperr.ValidationField("email", "must be a valid email address")
		},
	}

	rec := serve(t, svc, http.MethodPatch, "/customers/"+uuid.NewString(), `{"email":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"email"`)
}

func TestListCustomersCapsLimit(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		listFn: func(_ context.Context, _ auth.Identity, opts service.ListOptions) (service.Page, error) {
			require.Equal(t, service.ListOptions{Skip: 0, Limit: 1000}, opts)
			return service.Page{Skip: opts.Skip, Limit: opts.Limit}, nil
		},
	}

	rec := serve(t, svc, http.MethodGet, "/customers?limit=5000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[],"total":0,"skip":0,"limit":1000}`, rec.Body.String())
}

func TestListCustomersRejectsNonIntegerSkip(t *testing.T) {
	t.Parallel()

	rec := serve(t, &mockService{}, http.MethodGet, "/customers?skip=abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedCustomerIDIsNotFound(t *testing.T) {
	t.Parallel()

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := serve(t, &mockService{}, method, "/customers/42", "")
		require.Equal(t, http.StatusNotFound, rec.Code, method)
		require.Contains(t, rec.Body.String(), "CUSTOMER_NOT_FOUND")
	}
}

func TestDeleteCustomerNoContent(t *testing.T) {
	t.Parallel()

	customerID := uuid.New()
	svc := &mockService{
		deleteFn: func(_ context.Context, _ auth.Identity, id uuid.UUID) error {
			require.Equal(t, customerID, id)
			return nil
		},
	}

	rec := serve(t, svc, http.MethodDelete, "/customers/"+customerID.String(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func serve(t *testing.T, svc service.Service, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	logger := zaptest.NewLogger(t)
	r := chi.NewRouter()
	strict := customersapi.NewStrictHandlerWithOptions(New(svc, logger), nil, customersapi.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  httpx.RequestErrorHandler(logger),
		ResponseErrorHandlerFunc: httpx.ResponseErrorHandler(logger),
	})
	customersapi.HandlerWithOptions(strict, customersapi.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: httpx.ParamErrorHandler(logger),
	})

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	tid := tenantID
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: uuid.New(), TenantID: &tid}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type mockService struct {
	createFn func(ctx context.Context, id auth.Identity, input service.CreateInput) (service.Customer, error)
	listFn   func(ctx context.Context, id auth.Identity, opts service.ListOptions) (service.Page, error)
	getFn    func(ctx context.Context, id auth.Identity, customerID uuid.UUID) (service.Customer, error)
	updateFn func(ctx context.Context, id auth.Identity, customerID uuid.UUID, input service.UpdateInput) (service.Customer, error)
	deleteFn func(ctx context.Context, id auth.Identity, customerID uuid.UUID) error
}

func (m *mockService) Create(ctx context.Context, id auth.Identity, input service.CreateInput) (service.Customer, error) {
	if m.createFn == nil {
		panic("createFn not configured")
	}
	return m.createFn(ctx, id, input)
}

func (m *mockService) List(ctx context.Context, id auth.Identity, opts service.ListOptions) (service.Page, error) {
	if m.listFn == nil {
		panic("listFn not configured")
	}
	return m.listFn(ctx, id, opts)
}

func (m *mockService) Get(ctx context.Context, id auth.Identity, customerID uuid.UUID) (service.Customer, error) {
	if m.getFn == nil {
		panic("getFn not configured")
	}
	return m.getFn(ctx, id, customerID)
}

func (m *mockService) Update(ctx context.Context, id auth.Identity, customerID uuid.UUID, input service.UpdateInput) (service.Customer, error) {
	if m.updateFn == nil {
		panic("updateFn not configured")
	}
	return m.updateFn(ctx, id, customerID, input)
}

func (m *mockService) Delete(ctx context.Context, id auth.Identity, customerID uuid.UUID) error {
	if m.deleteFn == nil {
		panic("deleteFn not configured")
	}
	return m.deleteFn(ctx, id, customerID)
}
