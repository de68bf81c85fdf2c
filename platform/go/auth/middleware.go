package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/platform/go/httpx"
	"github.com/zenGate-Global/tenantgate/platform/go/logging"
)

// APIKeyHeader carries API keys.
const APIKeyHeader = "X-API-Key"

// CredentialResolver resolves either credential type.
type CredentialResolver interface {
	ResolveBearer(ctx context.Context, token string) (Identity, error)
	ResolveAPIKey(ctx context.Context, raw string) (Identity, error)
}

// TokenOnlyResolver validates a bearer token without loading a profile.
type TokenOnlyResolver interface {
	VerifyTokenOnly(ctx context.Context, token string) (Identity, error)
}

// Authenticate requires exactly one of a bearer token or an API key and stores the resolved Identity on the
// request context.
func Authenticate(resolver CredentialResolver) func(http.Handler) http.Handler {
	if resolver == nil {
		panic("auth.Authenticate: resolver must not be nil")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			hasBearer := r.Header.Get("Authorization") != ""
			rawKey := strings.TrimSpace(r.Header.Get(APIKeyHeader))

			var (
				id  Identity
				err error
			)
			switch {
			case hasBearer && rawKey != "":
				err = ErrUnauthenticated.WithMessage("provide either a bearer token or an api key, not both")
			case hasBearer:
				token, ok := ExtractBearerToken(r)
				if !ok {
					err = ErrUnauthenticated.WithMessage("malformed authorization header")
					break
				}
				id, err = resolver.ResolveBearer(r.Context(), token)
			case rawKey != "":
				id, err = resolver.ResolveAPIKey(r.Context(), rawKey)
			default:
				err = ErrUnauthenticated.WithMessage("missing credentials")
			}

			if err != nil {
				reject(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentityLogger(r.Context(), id)))
		})
	}
}

// AuthenticateTokenOnly accepts a valid bearer token even when the caller has no profile yet.
func AuthenticateTokenOnly(resolver TokenOnlyResolver) func(http.Handler) http.Handler {
	if resolver == nil {
		panic("auth.AuthenticateTokenOnly: resolver must not be nil")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := ExtractBearerToken(r)
			if !ok {
				reject(w, r, ErrUnauthenticated.WithMessage("missing bearer token"))
				return
			}
			id, err := resolver.VerifyTokenOnly(r.Context(), token)
			if err != nil {
				reject(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withIdentityLogger(r.Context(), id)))
		})
	}
}

// RequireTerms rejects callers that have not accepted the terms of service. Superadmins are exempt.
func RequireTerms(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			reject(w, r, ErrUnauthenticated)
			return
		}
		if !id.Superadmin && !id.TermsAccepted {
			reject(w, r, ErrTermsNotAccepted)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withIdentityLogger(ctx context.Context, id Identity) context.Context {
	ctx = WithIdentity(ctx, id)
	fields := []zap.Field{zap.String("user_id", id.UserID.String()), zap.String("auth_method", string(id.Method))}
	if id.TenantID != nil {
		fields = append(fields, zap.String("tenant_id", id.TenantID.String()))
	}
	logging.Tag(ctx, fields...)
	return logging.With(ctx, fields...)
}

func reject(w http.ResponseWriter, r *http.Request, err error) {
	if httpx.ProblemFor(err).Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}
	problem := httpx.WriteProblem(w, err)
	if logger, ok := logging.FromContext(r.Context()); ok {
		logger.Info("request rejected by authentication",
			zap.Int("status", problem.Status),
			zap.String("error_code", problem.ErrorCode),
			zap.Error(err),
		)
	}
}
