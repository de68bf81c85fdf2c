package clienv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPick(t *testing.T) {
	t.Parallel()

	v, err := Pick("database url", " postgres://flag ", "postgres://env")
	require.NoError(t, err)
	require.Equal(t, "postgres://flag", v)

	v, err = Pick("database url", "", "postgres://env")
	require.NoError(t, err)
	require.Equal(t, "postgres://env", v)

	_, err = Pick("database url", "  ", "")
	require.EqualError(t, err, "database url is required")
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tenantgate")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/tenantgate", cfg.DatabaseURL)
	require.Equal(t, "authenticated", cfg.AuthJWTAudience)
}
