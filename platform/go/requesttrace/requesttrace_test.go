package requesttrace

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/tenantgate/platform/go/auth"
)

func TestIntoContextAndFromContext(t *testing.T) {
	t.Parallel()

	audit := AuditInfo{ActorKind: ActorKindUser, UserID: ptr(uuid.New()), RequestID: "req-abc"}

	ctx := IntoContext(context.Background(), audit)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, audit, got)
}

func TestFromContextMissing(t *testing.T) {
	t.Parallel()

	_, ok := FromContext(context.Background())
	require.False(t, ok)
	require.Equal(t, ActorKindAnonymous, FromContextOrAnonymous(context.Background()).ActorKind)
}

func TestFromIdentity(t *testing.T) {
	t.Parallel()

	userID, tenantID := uuid.New(), uuid.New()

	audit, err := FromIdentity(auth.Identity{UserID: userID, TenantID: &tenantID, Method: auth.MethodBearer}, "req-xyz")
	require.NoError(t, err)
	require.Equal(t, ActorKindUser, audit.ActorKind)
	require.Equal(t, userID, *audit.UserID)
	require.Equal(t, tenantID, *audit.TenantID)
	require.Nil(t, audit.APIKeyID)
	require.Equal(t, "req-xyz", audit.RequestID)
}

func TestFromIdentityAPIKey(t *testing.T) {
	t.Parallel()

	keyID := uuid.New()
	audit, err := FromIdentity(auth.Identity{UserID: uuid.New(), Method: auth.MethodAPIKey, APIKeyID: &keyID}, "req-1")
	require.NoError(t, err)
	require.Equal(t, ActorKindAPIKey, audit.ActorKind)
	require.Equal(t, keyID, *audit.APIKeyID)

	details := audit.Details(map[string]any{"email": "a@b.co"})
	require.Equal(t, "a@b.co", details["email"])
	require.Equal(t, "api_key", details["actor_kind"])
	require.Equal(t, "req-1", details["request_id"])
	require.Equal(t, keyID.String(), details["api_key_id"])
}

func TestFromIdentityMissingUser(t *testing.T) {
	t.Parallel()

	_, err := FromIdentity(auth.Identity{}, "req-1")
	require.Error(t, err)
}

func TestAnonymous(t *testing.T) {
	t.Parallel()

	audit := Anonymous("req-anon")
	require.Equal(t, ActorKindAnonymous, audit.ActorKind)
	require.Nil(t, audit.UserID)
	require.Equal(t, "req-anon", audit.RequestID)
}

func TestSystem(t *testing.T) {
	t.Parallel()

	audit := System("req-sys")
	require.Equal(t, ActorKindSystem, audit.ActorKind)
	require.Nil(t, audit.UserID)
	require.NotContains(t, System("").Details(nil), "request_id")
}

func ptr[T any](v T) *T { return &v }
