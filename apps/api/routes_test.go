package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	customobjectshandler "github.com/zenGate-Global/tenantgate/domains/custom-objects/be/handler"
	customershandler "github.com/zenGate-Global/tenantgate/domains/customers/be/handler"
	itemshandler "github.com/zenGate-Global/tenantgate/domains/items/be/handler"
	roleshandler "github.com/zenGate-Global/tenantgate/domains/roles/be/handler"
	usershandler "github.com/zenGate-Global/tenantgate/domains/users/be/handler"
)

func generatedRouter(t *testing.T) chi.Router {
	t.Helper()

	r := chi.NewRouter()
	mountGenerated(r, zaptest.NewLogger(t), generatedHandlers{
		users:         &usershandler.Handler{},
		roles:         &roleshandler.Handler{},
		customObjects: &customobjectshandler.Handler{},
		items:         &itemshandler.Handler{},
		customers:     &customershandler.Handler{},
	})
	return r
}

func TestMountGeneratedRegistersEveryDomain(t *testing.T) {
	t.Parallel()

	routes := map[string]bool{}
	require.NoError(t, chi.Walk(generatedRouter(t), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	}))

	for _, want := range []string{
		"GET /users/me",
		"PUT /users/{userId}",
		"GET /permissions",
		"PATCH /custom-objects/{objectSlug}/records/{recordId}",
		"POST /items/{itemId}/image-upload-url",
		"DELETE /customers/{customerId}",
	} {
		require.True(t, routes[want], want)
	}
}

func TestMountGeneratedRendersParamErrorsAsProblems(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	generatedRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items?limit=ten", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "limit")
}
