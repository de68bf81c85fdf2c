package requesttrace

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/zenGate-Global/tenantgate/platform/go/auth"
)

type contextKey string

const (
	ctxAuditInfo contextKey = "TENANTGATE_REQUEST_TRACE"
)

// ActorKind represents who initiated a request.
type ActorKind string

const (
	ActorKindUser      ActorKind = "user"
	ActorKindAPIKey    ActorKind = "api_key"
	ActorKindAnonymous ActorKind = "anonymous"
	ActorKindSystem    ActorKind = "system"
)

// AuditInfo captures request-scoped metadata needed for traceability and auditing.
// UserID is set for user and api_key actors. APIKeyID only for api_key actors.
type AuditInfo struct {
	ActorKind ActorKind
	UserID    *uuid.UUID
	TenantID  *uuid.UUID
	APIKeyID  *uuid.UUID
	RequestID string
}

// IntoContext stores the AuditInfo in the provided context.
func IntoContext(ctx context.Context, audit AuditInfo) context.Context {
	return context.WithValue(ctx, ctxAuditInfo, audit)
}

// FromContext extracts the AuditInfo from context, returning false when not present.
func FromContext(ctx context.Context) (AuditInfo, bool) {
	if ctx == nil {
		return AuditInfo{}, false
	}
	v := ctx.Value(ctxAuditInfo)
	if v == nil {
		return AuditInfo{}, false
	}

	audit, ok := v.(AuditInfo)
	return audit, ok
}

// FromContextOrAnonymous returns the AuditInfo stored on the context, or an anonymous record when absent.
func FromContextOrAnonymous(ctx context.Context) AuditInfo {
	if audit, ok := FromContext(ctx); ok {
		return audit
	}
	return Anonymous("")
}

// FromIdentity builds an AuditInfo from the resolved caller and a request ID.
// Returns an error when the identity carries no user id.
func FromIdentity(id auth.Identity, requestID string) (AuditInfo, error) {
	if id.UserID == uuid.Nil {
		return AuditInfo{}, errors.New("user id is required to build audit info")
	}

	userID := id.UserID
	audit := AuditInfo{
		ActorKind: ActorKindUser,
		UserID:    &userID,
		TenantID:  id.TenantID,
		RequestID: requestID,
	}
	if id.Method == auth.MethodAPIKey {
		audit.ActorKind = ActorKindAPIKey
		audit.APIKeyID = id.APIKeyID
	}
	return audit, nil
}

// Details returns the audit metadata merged into audit log details.
func (a AuditInfo) Details(extra map[string]any) map[string]any {
	out := make(map[string]any, len(extra)+3)
	for k, v := range extra {
		out[k] = v
	}
	out["actor_kind"] = string(a.ActorKind)
	if a.RequestID != "" {
		out["request_id"] = a.RequestID
	}
	if a.APIKeyID != nil {
		out["api_key_id"] = a.APIKeyID.String()
	}
	return out
}

// Anonymous builds an AuditInfo for unauthenticated requests (e.g., webhooks) where no user ID exists.
func Anonymous(requestID string) AuditInfo {
	return AuditInfo{ActorKind: ActorKindAnonymous, RequestID: requestID}
}

// System builds an AuditInfo for background/system operations.
func System(requestID string) AuditInfo {
	return AuditInfo{ActorKind: ActorKindSystem, RequestID: requestID}
}
