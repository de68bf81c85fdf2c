package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
)

const (
	verifierHS256    = "hs256"
	verifierFirebase = "firebase"

	identityFirebase = "firebase"
	identityLocal    = "local"

	gatewayStripe = "stripe"
	gatewayDodo   = "dodo"
)

type config struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE" envDefault:"false"`
	CORSOrigins     string        `env:"CORS_ORIGINS"`

	PoolMaxConns          int32         `env:"POOL_MAX_CONNS" envDefault:"10"`
	PoolMinConns          int32         `env:"POOL_MIN_CONNS" envDefault:"0"`
	PoolMaxConnLifetime   time.Duration `env:"POOL_MAX_CONN_LIFETIME" envDefault:"1h"`
	PoolMaxConnIdleTime   time.Duration `env:"POOL_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	PoolHealthCheckPeriod time.Duration `env:"POOL_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	SuperadminUserID  string `env:"SUPERADMIN_USER_ID,required"`
	AuthTokenVerifier string `env:"AUTH_TOKEN_VERIFIER" envDefault:"hs256"` // hs256 | firebase
	AuthJWTSecret     string `env:"AUTH_JWT_SECRET"`
	AuthJWTAudience   string `env:"AUTH_JWT_AUDIENCE" envDefault:"authenticated"`

	IdentityProvider        string `env:"IDENTITY_PROVIDER" envDefault:"local"` // firebase | local
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE"`
	InviteRedirectURL       string `env:"INVITE_REDIRECT_URL" envDefault:"http://localhost:3001/complete-invite"`

	PaymentGateway      string `env:"PAYMENT_GATEWAY"` // stripe | dodo, empty disables checkout
	StripeAPIKey        string `env:"STRIPE_API_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	DodoAPIKey          string `env:"DODO_API_KEY"`
	DodoWebhookSecret   string `env:"DODO_WEBHOOK_SECRET"`
	DodoBaseURL         string `env:"DODO_BASE_URL"`

	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"600"`

	S3Bucket          string        `env:"S3_BUCKET"`
	S3Region          string        `env:"S3_REGION"`
	S3Endpoint        string        `env:"S3_ENDPOINT"`
	S3AccessKeyID     string        `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string        `env:"S3_SECRET_ACCESS_KEY"`
	S3PresignTTL      time.Duration `env:"S3_PRESIGN_TTL" envDefault:"15m"`
}

// loadConfig reads an optional .env file, parses the environment and checks settings that depend on each other.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, err
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	var errs []error

	switch c.AuthTokenVerifier {
	case verifierHS256:
		if strings.TrimSpace(c.AuthJWTSecret) == "" {
			errs = append(errs, errors.New("AUTH_JWT_SECRET is required when AUTH_TOKEN_VERIFIER=hs256"))
		}
	case verifierFirebase:
	default:
		errs = append(errs, fmt.Errorf("AUTH_TOKEN_VERIFIER %q is invalid (use hs256 or firebase)", c.AuthTokenVerifier))
	}

	switch c.IdentityProvider {
	case identityFirebase, identityLocal:
	default:
		errs = append(errs, fmt.Errorf("IDENTITY_PROVIDER %q is invalid (use firebase or local)", c.IdentityProvider))
	}

	switch c.PaymentGateway {
	case "":
	case gatewayStripe:
		if c.StripeAPIKey == "" || c.StripeWebhookSecret == "" {
			errs = append(errs, errors.New("STRIPE_API_KEY and STRIPE_WEBHOOK_SECRET are required when PAYMENT_GATEWAY=stripe"))
		}
	case gatewayDodo:
		if c.DodoAPIKey == "" || c.DodoWebhookSecret == "" {
			errs = append(errs, errors.New("DODO_API_KEY and DODO_WEBHOOK_SECRET are required when PAYMENT_GATEWAY=dodo"))
		}
	default:
		errs = append(errs, fmt.Errorf("PAYMENT_GATEWAY %q is invalid (use stripe or dodo)", c.PaymentGateway))
	}

	if c.PoolMaxConns < 0 || c.PoolMinConns < 0 {
		errs = append(errs, errors.New("POOL_MAX_CONNS and POOL_MIN_CONNS must not be negative"))
	} else if c.PoolMaxConns > 0 && c.PoolMinConns > c.PoolMaxConns {
		errs = append(errs, fmt.Errorf("POOL_MIN_CONNS %d exceeds POOL_MAX_CONNS %d", c.PoolMinConns, c.PoolMaxConns))
	}

	if c.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE must not be negative"))
	}
	return errors.Join(errs...)
}

func (c config) poolConfig() persistence.PoolConfig {
	return persistence.PoolConfig{
		ConnString:        c.DatabaseURL,
		MaxConns:          c.PoolMaxConns,
		MinConns:          c.PoolMinConns,
		MaxConnLifetime:   c.PoolMaxConnLifetime,
		MaxConnIdleTime:   c.PoolMaxConnIdleTime,
		HealthCheckPeriod: c.PoolHealthCheckPeriod,
	}
}

func (c config) usesFirebase() bool {
	return c.AuthTokenVerifier == verifierFirebase || c.IdentityProvider == identityFirebase
}
