package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zenGate-Global/tenantgate/domains/roles/be/service"
	rolesapi "github.com/zenGate-Global/tenantgate/generated/go/roles"
	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
	"github.com/zenGate-Global/tenantgate/platform/go/permissions"
)

func TestCreateEditorRole(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		createFn: func(_ context.Context, _ auth.Identity, input service.CreateInput) (service.Role, error) {
			require.Equal(t, "Editor", input.Name)
			require.Equal(t, []string{"ITEMS_READ", "ITEMS_UPDATE"}, input.Permissions)
			set, err := permissions.Encode(input.Permissions)
			require.NoError(t, err)
			return service.Role{ID: uuid.New(), Name: input.Name, PermissionSet: int64(set), Permissions: set.Names()}, nil
		},
	}

	rec := serve(t, svc, http.MethodPost, "/roles", `{"name":"Editor","permissions":["ITEMS_READ","ITEMS_UPDATE"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body rolesapi.Role
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, int64(permissions.ItemsRead|permissions.ItemsUpdate), body.PermissionSet)
	require.Equal(t, []string{"ITEMS_READ", "ITEMS_UPDATE"}, body.Permissions)
}

func TestCreateRoleWithoutPermissions(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	svc := &mockService{
		createFn: func(_ context.Context, _ auth.Identity, input service.CreateInput) (service.Role, error) {
			require.Empty(t, input.Permissions)
			return service.Role{ID: uuid.New(), Name: input.Name, CreatedAt: now, UpdatedAt: now}, nil
		},
	}
	h := New(svc, zaptest.NewLogger(t))

	resp, err := h.CreateRole(context.Background(), rolesapi.CreateRoleRequestObject{Body: &rolesapi.CreateRoleRequest{Name: "Viewer"}})
	require.NoError(t, err)

	created, ok := resp.(rolesapi.CreateRole201JSONResponse)
	require.True(t, ok)
	require.Equal(t, "Viewer", created.Name)
	require.NotNil(t, created.Permissions)
	require.Empty(t, created.Permissions)
}

func TestCreateRoleMissingBody(t *testing.T) {
	t.Parallel()

	h := New(&mockService{}, zaptest.NewLogger(t))

	resp, err := h.CreateRole(context.Background(), rolesapi.CreateRoleRequestObject{})
	require.NoError(t, err)

	problem, ok := resp.(rolesapi.CreateRoledefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, problem.StatusCode)
}

func TestCreateRoleNameTooLong(t *testing.T) {
	t.Parallel()

	h := New(&mockService{}, zaptest.NewLogger(t))

	resp, err := h.CreateRole(context.Background(), rolesapi.CreateRoleRequestObject{Body: &rolesapi.CreateRoleRequest{Name: strings.Repeat("x", 101)}})
	require.NoError(t, err)

	problem, ok := resp.(rolesapi.CreateRoledefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, problem.StatusCode)
	require.Contains(t, problem.Body.Errors, "name")
}

func TestCreateConflict(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		createFn: func(context.Context, auth.Identity, service.CreateInput) (service.Role, error) {
			return service.Role{}, service.ErrConflict
		},
	}

	rec := serve(t, svc, http.MethodPost, "/roles", `{"name":"Editor"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestCreateRoleMalformedJSON(t *testing.T) {
	t.Parallel()

	rec := serve(t, &mockService{}, http.MethodPost, "/roles", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestGetRoleMalformedIDIsNotFound(t *testing.T) {
	t.Parallel()

	h := New(&mockService{}, zaptest.NewLogger(t))

	resp, err := h.GetRole(context.Background(), rolesapi.GetRoleRequestObject{RoleId: "not-a-uuid"})
	require.NoError(t, err)

	problem, ok := resp.(rolesapi.GetRoledefaultApplicationProblemPlusJSONResponse)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, problem.StatusCode)
}

func TestUpdateRolePassesPartialInput(t *testing.T) {
	t.Parallel()

	roleID := uuid.New()
	svc := &mockService{
		updateFn: func(_ context.Context, _ auth.Identity, id uuid.UUID, input service.UpdateInput) (service.Role, error) {
			require.Equal(t, roleID, id)
			require.Nil(t, input.Name)
			require.Equal(t, []string{"USERS_READ"}, *input.Permissions)
			return service.Role{ID: id, Name: "Support", Permissions: *input.Permissions}, nil
		},
	}

	rec := serve(t, svc, http.MethodPut, "/roles/"+roleID.String(), `{"permissions":["USERS_READ"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListRoles(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		listFn: func(context.Context, auth.Identity) ([]service.Role, error) {
			return []service.Role{{ID: uuid.New(), Name: "Admin", IsAdminRole: true, Permissions: []string{"USERS_READ"}}}, nil
		},
	}

	rec := serve(t, svc, http.MethodGet, "/roles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var roles []rolesapi.Role
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roles))
	require.Len(t, roles, 1)
	require.True(t, roles[0].IsAdminRole)
}

func TestDeleteAdminRoleIsForbidden(t *testing.T) {
	t.Parallel()

	svc := &mockService{
		deleteFn: func(context.Context, auth.Identity, uuid.UUID) error { return service.ErrAdminRoleDelete },
	}

	rec := serve(t, svc, http.MethodDelete, "/roles/"+uuid.NewString(), "")
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPermissionsCatalogue(t *testing.T) {
	t.Parallel()

	svc := &mockService{catalogueFn: permissions.Catalogue}

	rec := serve(t, svc, http.MethodGet, "/permissions", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var groups []rolesapi.PermissionGroup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Equal(t, "Users", groups[0].GroupName)
	require.Equal(t, "USERS_READ", groups[0].Permissions[0].Name)
	require.Equal(t, int64(permissions.UsersRead), groups[0].Permissions[0].Value)
}

func serve(t *testing.T, svc service.Service, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	logger := zaptest.NewLogger(t)
	r := chi.NewRouter()
	_ = rolesapi.HandlerWithOptions(
		rolesapi.NewStrictHandlerWithOptions(New(svc, logger), nil, rolesapi.StrictHTTPServerOptions{
			RequestErrorHandlerFunc:  httpx.RequestErrorHandler(logger),
			ResponseErrorHandlerFunc: httpx.ResponseErrorHandler(logger),
		}),
		rolesapi.ChiServerOptions{BaseRouter: r, ErrorHandlerFunc: httpx.ParamErrorHandler(logger)},
	)

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
	createFn    func(ctx context.Context, id auth.Identity, input service.CreateInput) (service.Role, error)
	listFn      func(ctx context.Context, id auth.Identity) ([]service.Role, error)
	getFn       func(ctx context.Context, id auth.Identity, roleID uuid.UUID) (service.Role, error)
	updateFn    func(ctx context.Context, id auth.Identity, roleID uuid.UUID, input service.UpdateInput) (service.Role, error)
	deleteFn    func(ctx context.Context, id auth.Identity, roleID uuid.UUID) error
	catalogueFn func() []permissions.Group
}

func (m *mockService) Create(ctx context.Context, id auth.Identity, input service.CreateInput) (service.Role, error) {
	if m.createFn == nil {
		panic("createFn not configured")
	}
	return m.createFn(ctx, id, input)
}

func (m *mockService) List(ctx context.Context, id auth.Identity) ([]service.Role, error) {
	if m.listFn == nil {
		panic("listFn not configured")
	}
	return m.listFn(ctx, id)
}

func (m *mockService) Get(ctx context.Context, id auth.Identity, roleID uuid.UUID) (service.Role, error) {
	if m.getFn == nil {
		panic("getFn not configured")
	}
	return m.getFn(ctx, id, roleID)
}

func (m *mockService) Update(ctx context.Context, id auth.Identity, roleID uuid.UUID, input service.UpdateInput) (service.Role, error) {
	if m.updateFn == nil {
		panic("updateFn not configured")
	}
	return m.updateFn(ctx, id, roleID, input)
}

func (m *mockService) Delete(ctx context.Context, id auth.Identity, roleID uuid.UUID) error {
	if m.deleteFn == nil {
		panic("deleteFn not configured")
	}
	return m.deleteFn(ctx, id, roleID)
}

func (m *mockService) Catalogue() []permissions.Group {
	if m.catalogueFn == nil {
		panic("catalogueFn not configured")
	}
	return m.catalogueFn()
}
