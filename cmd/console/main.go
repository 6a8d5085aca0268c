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

	"recruitment-console/config"
	_ "recruitment-console/docs" // Important for Swagger
	"recruitment-console/internal/delivery/http/web"
	"recruitment-console/internal/domain"
	"recruitment-console/internal/repository/postgres"
	"recruitment-console/internal/repository/remote"
	"recruitment-console/internal/repository/session"
	"recruitment-console/internal/usecase"
	"recruitment-console/pkg/auth"
	"recruitment-console/pkg/database"
	"recruitment-console/pkg/logger"
	"recruitment-console/pkg/redis"
	"recruitment-console/pkg/resource"
	"recruitment-console/pkg/security"
	"recruitment-console/pkg/security/antivirus"
	"recruitment-console/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/oauth2"
)

const serviceName = "recruitment-console"

// @title           Recruitment Console API
// @version         1.0
// @description     JSON endpoints of the recruitment management console.
// @host            localhost:3000
// @BasePath        /v1
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth-storage
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger and tracing
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting recruitment console", "port", cfg.Port)

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		logger.Log.Warn("Tracing disabled", "error", err)
	}

	audit := security.NewAuditLogger(serviceName, cfg.GinMode)
	defer func() { _ = audit.Sync() }()

	// 3. Optional backing services
	var healthChecks []usecase.HealthCheck

	sessions, cache := session.NewMemoryStore(), session.NewMemoryCache()
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory sessions", "error", err)
	} else {
		client := redis.Client()
		sessions, cache = session.NewRedisStore(client), session.NewRedisCache(client)
		healthChecks = append(healthChecks, usecase.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	}

	var auditRepo domain.AuditRepository
	if pool := connectAuditDB(ctx, cfg); pool != nil {
		defer pool.Close()
		audit.SetPersistFunc(security.NewAuditEventRepository(pool).PersistFunc())
		auditRepo = postgres.NewAuditRepository(pool)
		healthChecks = append(healthChecks, usecase.HealthCheck{Name: "postgres", Check: pool.Ping})
	}

	scanners := []antivirus.Scanner{antivirus.NewNoOpScanner()}
	if cfg.ClamAVAddress != "" {
		clam := antivirus.NewClamAVScanner(cfg.ClamAVAddress, 0)
		scanners = []antivirus.Scanner{clam}
		healthChecks = append(healthChecks, usecase.HealthCheck{
			Name: "clamav",
			Check: func(ctx context.Context) error {
				if !clam.Available(ctx) {
					return errors.New("clamd unreachable")
				}
				return nil
			},
		})
	}
	cvGuard := usecase.NewCVGuard(
		security.NewCVValidator(int64(cfg.MaxUploadMB)<<20),
		antivirus.NewChainScanner(scanners...),
		security.NewUploadLimiter(redis.Client(), cfg.RateLimitUploadThreshold, 0),
		audit,
	)

	// 4. Setup Repositories
	resourceServer := resource.NewClient(cfg.ResourceServerURL, cfg.ResourceTimeout)
	recruitmentAPI := resource.NewClient(cfg.RecruitmentAPIURL, cfg.ResourceTimeout)

	candidateRepo := remote.NewCandidateRepository(resourceServer)
	userRepo := remote.NewUserRepository(resourceServer)
	profileRepo := remote.NewProfileRepository(resourceServer)
	jobRepo := remote.NewJobRepository(recruitmentAPI)
	interviewRepo := remote.NewInterviewRepository(recruitmentAPI)
	offerRepo := remote.NewOfferRepository(recruitmentAPI)
	lookupRepo := remote.NewLookupRepository(recruitmentAPI)

	// 5. Setup UseCases
	validate := domain.NewValidator()
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.OAuthAuthURL,
			TokenURL: cfg.OAuthTokenURL,
		},
		RedirectURL: cfg.RedirectURL(),
		Scopes:      cfg.OAuthScopes,
	}
	var verifier usecase.IDTokenVerifier
	if cfg.OAuthJWKSURL != "" {
		verifier = auth.NewProvider(cfg.OAuthJWKSURL, nil)
	}

	authUC := usecase.NewAuthUsecase(
		oauthConfig,
		verifier,
		profileRepo,
		userRepo,
		sessions,
		auth.NewCookieSigner(cfg.SessionSecret, cfg.SessionTTL),
		audit,
	)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, cvGuard, validate, audit)
	userUC := usecase.NewUserUsecase(userRepo, validate, audit)
	jobUC := usecase.NewJobUsecase(jobRepo, validate, audit)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, validate, audit)
	offerUC := usecase.NewOfferUsecase(offerRepo, validate, audit)
	lookupUC := usecase.NewLookupUsecase(lookupRepo, cache, cfg.LookupCacheTTL)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	// 6. Setup Router
	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Log.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	router := web.NewRouter(web.RouterDeps{
		Config:      cfg,
		Renderer:    renderer,
		Audit:       audit,
		AuthUC:      authUC,
		CandidateUC: candidateUC,
		UserUC:      userUC,
		JobUC:       jobUC,
		InterviewUC: interviewUC,
		OfferUC:     offerUC,
		LookupUC:    lookupUC,
		AuditUC:     auditUC,
		Health:      usecase.NewHealthUsecase(healthChecks...),
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Log.Warn("Flush traces", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// connectAuditDB opens the audit log database. It returns nil when audit
// persistence is off or the database cannot be reached.
func connectAuditDB(ctx context.Context, cfg *config.Config) *pgxpool.Pool {
	if cfg.DBUrl == "" || !cfg.AuditLogToDB {
		return nil
	}
	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Warn("Audit database unavailable, audit events go to stdout only", "error", err)
		return nil
	}
	if err := database.EnsureAuditSchema(ctx, pool); err != nil {
		logger.Log.Warn("Audit schema check failed", "error", err)
		pool.Close()
		return nil
	}
	return pool
}
