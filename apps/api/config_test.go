package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zenGate-Global/tenantgate/platform/go/billing"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

func validConfig() config {
	return config{
		DatabaseURL:       "postgres://localhost/tenantgate",
		SuperadminUserID:  "9a1d3c6e-0000-4000-8000-000000000001",
		AuthTokenVerifier: verifierHS256,
		AuthJWTSecret:     "secret",
		IdentityProvider:  identityLocal,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config) {}},
		{name: "hs256 without secret", mutate: func(c *config) { c.AuthJWTSecret = "" }, wantErr: "AUTH_JWT_SECRET"},
		{name: "firebase verifier needs no secret", mutate: func(c *config) {
			c.AuthTokenVerifier = verifierFirebase
			c.AuthJWTSecret = ""
		}},
		{name: "unknown verifier", mutate: func(c *config) { c.AuthTokenVerifier = "rs256" }, wantErr: "AUTH_TOKEN_VERIFIER"},
		{name: "unknown identity provider", mutate: func(c *config) { c.IdentityProvider = "okta" }, wantErr: "IDENTITY_PROVIDER"},
		{name: "stripe without secret", mutate: func(c *config) {
			c.PaymentGateway = gatewayStripe
			c.StripeAPIKey = "sk_test"
		}, wantErr: "STRIPE_WEBHOOK_SECRET"},
		{name: "stripe configured", mutate: func(c *config) {
			c.PaymentGateway = gatewayStripe
			c.StripeAPIKey = "sk_test"
			c.StripeWebhookSecret = "whsec_test"
		}},
		{name: "dodo without key", mutate: func(c *config) {
			c.PaymentGateway = gatewayDodo
			c.DodoWebhookSecret = "whsec_test"
		}, wantErr: "DODO_API_KEY"},
		{name: "unknown gateway", mutate: func(c *config) { c.PaymentGateway = "paypal" }, wantErr: "PAYMENT_GATEWAY"},
		{name: "pool min above max", mutate: func(c *config) {
			c.PoolMaxConns = 4
			c.PoolMinConns = 8
		}, wantErr: "POOL_MIN_CONNS 8 exceeds POOL_MAX_CONNS 4"},
		{name: "negative pool size", mutate: func(c *config) { c.PoolMaxConns = -1 }, wantErr: "POOL_MAX_CONNS"},
		{name: "negative rate limit", mutate: func(c *config) { c.RateLimitPerMinute = -1 }, wantErr: "RATE_LIMIT_PER_MINUTE"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.AuthJWTSecret = ""
	cfg.PaymentGateway = "paypal"

	err := cfg.validate()
	require.ErrorContains(t, err, "AUTH_JWT_SECRET")
	require.ErrorContains(t, err, "PAYMENT_GATEWAY")
}

func TestUsesFirebase(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.False(t, cfg.usesFirebase())
	cfg.IdentityProvider = identityFirebase
	require.True(t, cfg.usesFirebase())
}

func TestLoadConfigPoolSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tenantgate")
	t.Setenv("SUPERADMIN_USER_ID", "9a1d3c6e-0000-4000-8000-000000000001")
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("POOL_MAX_CONNS", "25")
	t.Setenv("POOL_MIN_CONNS", "5")
	t.Setenv("POOL_MAX_CONN_IDLE_TIME", "2m")

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.Equal(t, persistence.PoolConfig{
		ConnString:        "postgres://localhost/tenantgate",
		MaxConns:          25,
		MinConns:          5,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   2 * time.Minute,
		HealthCheckPeriod: time.Minute,
	}, cfg.poolConfig())
}

func TestNewPaymentProvidersReturnsOnlyConfigured(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.PaymentGateway = gatewayDodo

	gateway, webhooks, err := newPaymentProviders(cfg)
	require.NoError(t, err)
	require.True(t, gateway == nil)
	require.Empty(t, webhooks)

	cfg.StripeAPIKey = "sk_test"
	cfg.StripeWebhookSecret = "whsec_test"
	gateway, webhooks, err = newPaymentProviders(cfg)
	require.NoError(t, err)
	require.True(t, gateway == nil)
	require.Len(t, webhooks, 1)

	cfg.PaymentGateway = gatewayStripe
	gateway, _, err = newPaymentProviders(cfg)
	require.NoError(t, err)
	require.Equal(t, billing.ProviderStripe, gateway.Name())
}
