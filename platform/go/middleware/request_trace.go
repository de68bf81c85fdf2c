package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
	platformlogging "github.com/zenGate-Global/tenantgate/platform/go/logging"
	"github.com/zenGate-Global/tenantgate/platform/go/requesttrace"
)

// RequestTrace populates the context with request-scoped AuditInfo so services can stamp audit entries.
// It should run after authentication middleware so the identity is available when present.
func RequestTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := platformlogging.FromRequest(r, nil)
		requestID := middleware.GetReqID(r.Context())

		var audit requesttrace.AuditInfo
		if id, ok := auth.IdentityFromContext(r.Context()); ok {
			var err error
			audit, err = requesttrace.FromIdentity(id, requestID)
			if err != nil {
				logger.Error("build audit info from identity", zap.Error(err))
				httpx.WriteProblem(w, auth.ErrUnauthenticated)
				return
			}
		} else {
			audit = requesttrace.Anonymous(requestID)
		}

		ctx := requesttrace.IntoContext(r.Context(), audit)
		ctx = platformlogging.With(ctx, zap.String("actor_kind", string(audit.ActorKind)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
