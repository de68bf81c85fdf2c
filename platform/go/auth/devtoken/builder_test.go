package devtoken

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/tenantgate/platform/go/auth"
)

func TestBuildHS256TokenVerifies(t *testing.T) {
	t.Parallel()

	token, err := BuildHS256Token(Params{
		Secret: "dev-secret",
		UserID: "7d9f5c1e-2b7a-4f7e-9a55-3f1c2d7e8a90",
		Email:  "admin@example.com",
	}, time.Now())
	require.NoError(t, err)

	verifier, err := auth.NewHS256Verifier("dev-secret", "")
	require.NoError(t, err)

	claims, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "7d9f5c1e-2b7a-4f7e-9a55-3f1c2d7e8a90", claims.Subject)
	require.Equal(t, "admin@example.com", claims.Email)
}

func TestBuildHS256TokenRequiresFields(t *testing.T) {
	t.Parallel()

	_, err := BuildHS256Token(Params{UserID: "u", Email: "e"}, time.Time{})
	require.Error(t, err)
	_, err = BuildHS256Token(Params{Secret: "s", Email: "e"}, time.Time{})
	require.Error(t, err)
	_, err = BuildHS256Token(Params{Secret: "s", UserID: "u"}, time.Time{})
	require.Error(t, err)
}
