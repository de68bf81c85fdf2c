package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zenGate-Global/tenantgate/contracts"
	apikeyshandler "github.com/zenGate-Global/tenantgate/domains/apikeys/be/handler"
	apikeysrepo "github.com/zenGate-Global/tenantgate/domains/apikeys/be/repo"
	apikeysservice "github.com/zenGate-Global/tenantgate/domains/apikeys/be/service"
	auditlogshandler "github.com/zenGate-Global/tenantgate/domains/audit-logs/be/handler"
	auditlogsrepo "github.com/zenGate-Global/tenantgate/domains/audit-logs/be/repo"
	auditlogsservice "github.com/zenGate-Global/tenantgate/domains/audit-logs/be/service"
	customobjectshandler "github.com/zenGate-Global/tenantgate/domains/custom-objects/be/handler"
	customobjectsrepo "github.com/zenGate-Global/tenantgate/domains/custom-objects/be/repo"
	customobjectsservice "github.com/zenGate-Global/tenantgate/domains/custom-objects/be/service"
	customershandler "github.com/zenGate-Global/tenantgate/domains/customers/be/handler"
	customersrepo "github.com/zenGate-Global/tenantgate/domains/customers/be/repo"
	customersservice "github.com/zenGate-Global/tenantgate/domains/customers/be/service"
	itemshandler "github.com/zenGate-Global/tenantgate/domains/items/be/handler"
	itemsrepo "github.com/zenGate-Global/tenantgate/domains/items/be/repo"
	itemsservice "github.com/zenGate-Global/tenantgate/domains/items/be/service"
	roleshandler "github.com/zenGate-Global/tenantgate/domains/roles/be/handler"
	rolesrepo "github.com/zenGate-Global/tenantgate/domains/roles/be/repo"
	rolesservice "github.com/zenGate-Global/tenantgate/domains/roles/be/service"
	subscriptionshandler "github.com/zenGate-Global/tenantgate/domains/subscriptions/be/handler"
	subscriptionsrepo "github.com/zenGate-Global/tenantgate/domains/subscriptions/be/repo"
	subscriptionsservice "github.com/zenGate-Global/tenantgate/domains/subscriptions/be/service"
	tenantshandler "github.com/zenGate-Global/tenantgate/domains/tenants/be/handler"
	tenantsrepo "github.com/zenGate-Global/tenantgate/domains/tenants/be/repo"
	tenantsservice "github.com/zenGate-Global/tenantgate/domains/tenants/be/service"
	usershandler "github.com/zenGate-Global/tenantgate/domains/users/be/handler"
	usersrepo "github.com/zenGate-Global/tenantgate/domains/users/be/repo"
	usersservice "github.com/zenGate-Global/tenantgate/domains/users/be/service"
	webhookshandler "github.com/zenGate-Global/tenantgate/domains/webhooks/be/handler"
	webhooksservice "github.com/zenGate-Global/tenantgate/domains/webhooks/be/service"
	"github.com/zenGate-Global/tenantgate/platform/go/access"
	platformauth "github.com/zenGate-Global/tenantgate/platform/go/auth"
	"github.com/zenGate-Global/tenantgate/platform/go/billing"
	"github.com/zenGate-Global/tenantgate/platform/go/customfields"
	"github.com/zenGate-Global/tenantgate/platform/go/entitlements"
	"github.com/zenGate-Global/tenantgate/platform/go/gcp"
	"github.com/zenGate-Global/tenantgate/platform/go/identity"
	platformlogging "github.com/zenGate-Global/tenantgate/platform/go/logging"
	"github.com/zenGate-Global/tenantgate/platform/go/metrics"
	platformmiddleware "github.com/zenGate-Global/tenantgate/platform/go/middleware"
	"github.com/zenGate-Global/tenantgate/platform/go/persistence"
	"github.com/zenGate-Global/tenantgate/platform/go/ratelimit"
	"github.com/zenGate-Global/tenantgate/platform/go/storage"
)

// version is stamped at build time with -ldflags "-X main.version=<tag>".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := platformlogging.NewLogger(platformlogging.Config{
		Service: "tenantgate-api",
		Version: version,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.AutoMigrate {
		if err := persistence.MigrateUp(cfg.DatabaseURL); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
		logger.Info("database migrations applied")
	}

	pool, err := persistence.NewPool(ctx, cfg.poolConfig())
	if err != nil {
		logger.Fatal("init postgres pool", zap.Error(err))
	}
	defer persistence.ClosePool(pool)

	binder := persistence.NewBinder(pool)

	userStore := persistence.NewUserStore()
	roleStore := persistence.NewRoleStore()
	tenantStore := persistence.NewTenantStore()
	planStore := persistence.NewPlanStore()
	keyStore := persistence.NewAPIKeyStore()
	auditStore := persistence.NewAuditLogStore()
	usageStore := persistence.NewUsageStore()
	objectStore := persistence.NewCustomObjectStore()
	checkoutStore := persistence.NewCheckoutSessionStore()
	eventStore := persistence.NewWebhookEventStore()
	itemStore := persistence.NewItemStore()
	customerStore := persistence.NewCustomerStore()

	guard := access.NewGuard(userStore)
	evaluator := entitlements.NewEvaluator(entitlements.Config{
		Tenants: tenantStore,
		Plans:   planStore,
		Usage:   usageStore,
		Counters: map[string]entitlements.Counter{
			entitlements.FeatureMaxUsers:         {Noun: "users", Count: userStore.CountByTenant},
			entitlements.FeatureMaxCustomObjects: {Noun: "custom objects", Count: objectStore.CountObjects},
			entitlements.FeatureMaxAPIKeys:       {Noun: "API keys", Count: keyStore.CountByTenant},
		},
	})

	var firebaseClient *firebaseauth.Client
	if cfg.usesFirebase() {
		firebaseClient, err = gcp.InitFirebaseAuth(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal("init firebase auth", zap.Error(err))
		}
	}

	verifier, err := newTokenVerifier(cfg, firebaseClient)
	if err != nil {
		logger.Fatal("init token verifier", zap.Error(err))
	}
	identityProvider := newIdentityProvider(cfg, firebaseClient)

	gateway, webhookProviders, err := newPaymentProviders(cfg)
	if err != nil {
		logger.Fatal("init payment providers", zap.Error(err))
	}

	limiter, closeLimiter, err := newLimiter(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("init rate limiter", zap.Error(err))
	}
	defer closeLimiter()

	var presigner storage.Presigner
	if s3Presigner, err := storage.NewS3Presigner(ctx, storage.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
		TTL:             cfg.S3PresignTTL,
	}); err == nil {
		presigner = s3Presigner
	} else if !errors.Is(err, storage.ErrDisabled) {
		logger.Fatal("init s3 presigner", zap.Error(err))
	} else {
		logger.Info("object storage disabled, tenant logos and item images are not served")
	}

	resolver := platformauth.NewResolver(platformauth.ResolverConfig{
		Runner:       binder,
		Verifier:     verifier,
		Users:        userStore,
		Keys:         keyStore,
		SuperadminID: cfg.SuperadminUserID,
		Logger:       logger,
	})

	userService := usersservice.New(usersservice.Config{
		Runner:       binder,
		Repo:         usersrepo.NewPostgresRepository(userStore, roleStore, auditStore),
		Permissions:  guard,
		Entitlements: evaluator,
		Identity:     identityProvider,
		Logger:       logger,
	})
	userHTTPHandler := usershandler.New(userService, logger)

	roleService := rolesservice.New(binder, rolesrepo.NewPostgresRepository(roleStore, userStore, auditStore), guard)
	roleHTTPHandler := roleshandler.New(roleService, logger)

	keyService := apikeysservice.New(apikeysservice.Config{
		Runner:       binder,
		Repo:         apikeysrepo.NewPostgresRepository(keyStore, auditStore),
		Entitlements: evaluator,
	})
	keyHTTPHandler := apikeyshandler.New(keyService, logger)

	tenantService := tenantsservice.New(tenantsservice.Config{
		Runner: binder,
		Repo: tenantsrepo.NewPostgresRepository(tenantsrepo.Stores{
			Tenants: tenantStore,
			Roles:   roleStore,
			Users:   userStore,
			Plans:   planStore,
			Audit:   auditStore,
		}),
		Admins:    guard,
		Identity:  identityProvider,
		Presigner: presigner,
		Logger:    logger,
	})
	tenantHTTPHandler := tenantshandler.New(tenantService, logger)

	subscriptionService := subscriptionsservice.New(subscriptionsservice.Config{
		Runner:  binder,
		Repo:    subscriptionsrepo.NewPostgresRepository(planStore, tenantStore, checkoutStore),
		Admins:  guard,
		Usage:   evaluator,
		Gateway: gateway,
		Logger:  logger,
	})
	subscriptionHTTPHandler := subscriptionshandler.New(subscriptionService, logger)

	processor := billing.NewProcessor(billing.ProcessorConfig{
		Runner:    binder,
		Events:    eventStore,
		Tenants:   tenantStore,
		Users:     userStore,
		Plans:     planStore,
		Checkouts: checkoutStore,
		Logger:    logger,
	})
	webhookService := webhooksservice.New(webhooksservice.Config{
		Processor: processor,
		Providers: webhookProviders,
		Logger:    logger,
	})
	webhookHTTPHandler := webhookshandler.New(webhookService, logger)

	objectService := customobjectsservice.New(customobjectsservice.Config{
		Runner:       binder,
		Repo:         customobjectsrepo.NewPostgresRepository(objectStore, auditStore),
		Permissions:  guard,
		Entitlements: evaluator,
		Validator:    customfields.NewValidator(),
		Logger:       logger,
	})
	objectHTTPHandler := customobjectshandler.New(objectService, logger)

	itemService := itemsservice.New(itemsservice.Config{
		Runner:      binder,
		Repo:        itemsrepo.NewPostgresRepository(itemStore, tenantStore, auditStore),
		Permissions: guard,
		Presigner:   presigner,
		Logger:      logger,
	})
	itemHTTPHandler := itemshandler.New(itemService, logger)

	customerService := customersservice.New(customersservice.Config{
		Runner:      binder,
		Repo:        customersrepo.NewPostgresRepository(customerStore, auditStore),
		Permissions: guard,
		Logger:      logger,
	})
	customerHTTPHandler := customershandler.New(customerService, logger)

	auditService := auditlogsservice.New(binder, auditlogsrepo.NewPostgresRepository(auditStore), guard)
	auditHTTPHandler := auditlogshandler.New(auditService, logger)

	spec, err := contracts.Load(ctx)
	if err != nil {
		logger.Fatal("load api contract", zap.Error(err))
	}

	registry := metrics.NewRegistry()
	rootRouter := chi.NewRouter()

	rootRouter.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		chimw.Timeout(cfg.RequestTimeout),
		platformmiddleware.CORS(platformmiddleware.SplitOrigins(cfg.CORSOrigins)),
	)

	rootRouter.Use(platformlogging.RequestLogger(logger))
	rootRouter.Use(registry.Middleware)

	rootRouter.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rootRouter.Get("/readyz", readinessHandler(pool, logger))
	rootRouter.Handle("/metrics", registry.Handler())

	// ---- Swagger UI + OpenAPI JSON (public) ----
	registerDocsRoutes(rootRouter, spec, logger)

	apiRouter := chi.NewRouter()
	apiRouter.Use(platformmiddleware.SpecValidator(spec, logger))

	apiRouter.Group(func(r chi.Router) {
		subscriptionHTTPHandler.PublicRoutes(r)
		webhookHTTPHandler.Routes(r)
	})

	apiRouter.Group(func(r chi.Router) {
		r.Use(platformauth.AuthenticateTokenOnly(resolver))
		tenantHTTPHandler.OnboardingRoutes(r)
	})

	apiRouter.Group(func(r chi.Router) {
		r.Use(platformauth.Authenticate(resolver))
		r.Use(platformmiddleware.RequestTrace)
		r.Use(platformmiddleware.RateLimit(limiter, cfg.RateLimitPerMinute, time.Minute))

		userHTTPHandler.InviteRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(platformauth.RequireTerms)

			mountGenerated(r, logger, generatedHandlers{
				users:         userHTTPHandler,
				roles:         roleHTTPHandler,
				customObjects: objectHTTPHandler,
				items:         itemHTTPHandler,
				customers:     customerHTTPHandler,
			})
			keyHTTPHandler.Routes(r)
			tenantHTTPHandler.Routes(r)
			tenantHTTPHandler.SuperadminRoutes(r)
			subscriptionHTTPHandler.Routes(r)
			auditHTTPHandler.Routes(r)
		})
	})

	rootRouter.Mount("/api/v1", apiRouter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rootRouter,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("starting api server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newTokenVerifier(cfg config, client *firebaseauth.Client) (platformauth.TokenVerifier, error) {
	if cfg.AuthTokenVerifier == verifierFirebase {
		return platformauth.NewFirebaseVerifier(client), nil
	}
	return platformauth.NewHS256Verifier(cfg.AuthJWTSecret, cfg.AuthJWTAudience)
}

func newIdentityProvider(cfg config, client *firebaseauth.Client) identity.Provider {
	if cfg.IdentityProvider == identityFirebase {
		return identity.NewFirebase(client, cfg.InviteRedirectURL)
	}
	return identity.NewLocal(cfg.InviteRedirectURL)
}

// newPaymentProviders builds the checkout gateway selected by PAYMENT_GATEWAY and a webhook provider for every
// gateway whose credentials are configured, so events keep flowing while switching providers.
func newPaymentProviders(cfg config) (billing.Provider, []billing.Provider, error) {
	var (
		gateway  billing.Provider
		webhooks []billing.Provider
	)
	if cfg.StripeAPIKey != "" && cfg.StripeWebhookSecret != "" {
		stripeProvider := billing.NewStripeProvider(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
		webhooks = append(webhooks, stripeProvider)
		if cfg.PaymentGateway == gatewayStripe {
			gateway = stripeProvider
		}
	}
	if cfg.DodoAPIKey != "" && cfg.DodoWebhookSecret != "" {
		dodoProvider, err := billing.NewDodoProvider(billing.DodoConfig{
			APIKey:        cfg.DodoAPIKey,
			WebhookSecret: cfg.DodoWebhookSecret,
			BaseURL:       cfg.DodoBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		webhooks = append(webhooks, dodoProvider)
		if cfg.PaymentGateway == gatewayDodo {
			gateway = dodoProvider
		}
	}
	return gateway, webhooks, nil
}

func newLimiter(ctx context.Context, cfg config, logger *zap.Logger) (ratelimit.Limiter, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("rate limiting with in-process counters")
		return ratelimit.NewMemoryLimiter(ratelimit.MemoryConfig{}), func() {}, nil
	}
	limiter, client, err := ratelimit.NewRedisLimiter(ctx, ratelimit.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("rate limiting with redis", zap.String("addr", cfg.RedisAddr))
	return limiter, func() { _ = client.Close() }, nil
}

func readinessHandler(pool *pgxpool.Pool, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			platformlogging.FromRequest(r, logger).Warn("database not ready", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
