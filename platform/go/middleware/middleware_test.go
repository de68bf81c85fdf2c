package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/ratelimit"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
)

func withIdentity(id auth.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func TestRequestTraceWithIdentity(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(withIdentity(auth.Identity{UserID: userID, Method: auth.MethodBearer}))
	r.Use(RequestTrace)

	var got requesttrace.AuditInfo
	r.Get("/test", func(w http.ResponseWriter, req *http.Request) {
		got, _ = requesttrace.FromContext(req.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, requesttrace.ActorKindUser, got.ActorKind)
	require.Equal(t, userID, *got.UserID)
	require.NotEmpty(t, got.RequestID)
}

func TestRequestTraceAnonymous(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestTrace)

	var got requesttrace.AuditInfo
	r.Get("/test", func(w http.ResponseWriter, req *http.Request) {
		got, _ = requesttrace.FromContext(req.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, requesttrace.ActorKindAnonymous, got.ActorKind)
	require.Nil(t, got.UserID)
}

func TestRequestTraceRejectsIdentityWithoutUser(t *testing.T) {
	t.Parallel()

	handler := withIdentity(auth.Identity{})(RequestTrace(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORS(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	testCases := []struct {
		name    string
		origins []string
		method  string
		origin  string
		status  int
		allow   string
	}{
		{name: "wildcard", origins: nil, method: http.MethodGet, origin: "https://x.dev", status: http.StatusOK, allow: "*"},
		{name: "listed origin", origins: []string{"https://app.example.com/"}, method: http.MethodGet, origin: "https://app.example.com", status: http.StatusOK, allow: "https://app.example.com"},
		{name: "unlisted origin", origins: []string{"https://app.example.com"}, method: http.MethodGet, origin: "https://evil.example.com", status: http.StatusOK, allow: ""},
		{name: "preflight", origins: []string{"*"}, method: http.MethodOptions, origin: "https://x.dev", status: http.StatusNoContent, allow: "*"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()
			CORS(tc.origins)(next).ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			require.Equal(t, tc.allow, rec.Header().Get("Access-Control-Allow-Origin"))
			require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-API-Key")
		})
	}
}

func TestSplitOrigins(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"https://a.dev", "https://b.dev"}, SplitOrigins(" https://a.dev, ,https://b.dev "))
	require.Empty(t, SplitOrigins(""))
}

type stubLimiter struct {
	allowFn func(ctx context.Context, key string, limit int, window time.Duration) (ratelimit.Decision, error)
}

func (s stubLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (ratelimit.Decision, error) {
	if s.allowFn == nil {
		panic("allowFn not configured")
	}
	return s.allowFn(ctx, key, limit, window)
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.NewMemoryLimiter(ratelimit.MemoryConfig{})
	keyID := uuid.New()
	handler := withIdentity(auth.Identity{UserID: uuid.New(), Method: auth.MethodAPIKey, APIKeyID: &keyID})(
		RateLimit(limiter, 2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})),
	)

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, last.Code)
	}

	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	require.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	require.NotEmpty(t, last.Header().Get("Retry-After"))
	require.Equal(t, "application/problem+json", last.Header().Get("Content-Type"))
}

func TestRateLimitKeys(t *testing.T) {
	t.Parallel()

	userID, keyID := uuid.New(), uuid.New()

	testCases := []struct {
		name string
		id   *auth.Identity
		want string
	}{
		{name: "anonymous", want: "ip:192.0.2.1"},
		{name: "user", id: &auth.Identity{UserID: userID}, want: "user:" + userID.String()},
		{name: "api key", id: &auth.Identity{UserID: userID, APIKeyID: &keyID}, want: "key:" + keyID.String()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.id != nil {
				req = req.WithContext(auth.WithIdentity(req.Context(), *tc.id))
			}
			require.Equal(t, tc.want, rateLimitKey(req))
		})
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	t.Parallel()

	limiter := stubLimiter{allowFn: func(context.Context, string, int, time.Duration) (ratelimit.Decision, error) {
		return ratelimit.Decision{}, errors.New("redis down")
	}}
	rec := httptest.NewRecorder()
	RateLimit(limiter, 1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
}
