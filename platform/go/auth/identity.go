package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/tenant"
)

// Method records how a caller authenticated.
type Method string

const (
	MethodBearer    Method = "bearer"
	MethodAPIKey    Method = "api_key"
	MethodTokenOnly Method = "token_only"
)

// Identity is the canonical caller derived for every request. It is never persisted.
type Identity struct {
	UserID        uuid.UUID
	TenantID      *uuid.UUID
	Email         string
	Superadmin    bool
	Method        Method
	TermsAccepted bool
	APIKeyID      *uuid.UUID
}

// Tenant returns the tenant id, or uuid.Nil when the caller has none.
func (i Identity) Tenant() uuid.UUID {
	if i.TenantID == nil {
		return uuid.Nil
	}
	return *i.TenantID
}

// Scope converts the identity into the database session scope.
func (i Identity) Scope() tenant.Scope {
	return tenant.Scope{UserID: i.UserID, TenantID: i.Tenant(), Superadmin: i.Superadmin}
}

type ctxKey struct{}

// WithIdentity stores the identity on the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity resolved by the authentication middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
