package web

import (
	"net/http"
	"time"

	"recruitment-console/config"
	"recruitment-console/internal/delivery/http/middleware"
	v1 "recruitment-console/internal/delivery/http/v1"
	"recruitment-console/internal/delivery/http/web/static"
	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/logger"
	"recruitment-console/pkg/security"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Config      *config.Config
	Renderer    *Renderer
	Audit       *security.AuditLogger
	AuthUC      domain.AuthUsecase
	CandidateUC domain.CandidateUsecase
	UserUC      domain.UserUsecase
	JobUC       domain.JobUsecase
	InterviewUC domain.InterviewUsecase
	OfferUC     domain.OfferUsecase
	LookupUC    domain.LookupUsecase
	AuditUC     domain.AuditUsecase
	Health      v1.HealthChecker
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	secure := cfg.CookieSecure
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()
	r.HTMLRender = deps.Renderer
	r.MaxMultipartMemory = int64(cfg.MaxUploadMB+1) << 20

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware(secure))
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsProduction()))
	r.Use(middleware.ErrorHandler(middleware.ErrorHandlerConfig{
		SecureCookies: secure,
		RenderPage:    RenderError,
		OnUnauthorized: func(c *gin.Context) {
			if err := deps.AuthUC.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
				logger.Log.Warn("drop rejected session", "error", err)
			}
		},
	}))
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window, deps.Audit)))
	r.Use(middleware.AuthMiddleware(deps.AuthUC, secure))
	r.Use(middleware.CSRFMiddleware(deps.Audit, secure))

	r.StaticFS("/static", http.FS(static.FS))
	r.GET("/favicon.ico", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	loginLimit := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window, deps.Audit))
	uploadLimit := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(cfg.RateLimitUploadThreshold, window, deps.Audit))

	NewAuthHandler(r, deps.AuthUC, cfg.SessionTTL, secure, loginLimit)
	NewHomeHandler(r)
	NewCandidateHandler(r, deps.CandidateUC, uploadLimit)
	NewJobHandler(r, deps.JobUC)
	NewInterviewHandler(r, deps.InterviewUC, deps.LookupUC)
	NewOfferHandler(r, deps.OfferUC, deps.LookupUC)

	users := r.Group(userBase)
	users.Use(middleware.RequireAdmin(deps.Audit))
	NewUserHandler(users, deps.UserUC)

	auditLog := r.Group(auditBase)
	auditLog.Use(middleware.RequireAdmin(deps.Audit))
	NewAuditHandler(auditLog, deps.AuditUC)

	v1.RegisterRoutes(r.Group("/v1"), v1.RouterDeps{Health: deps.Health})

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Page not found"))
	})

	return r
}
