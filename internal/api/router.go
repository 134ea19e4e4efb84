package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/evento-nomina/payroll-system/internal/api/handler"
	"github.com/evento-nomina/payroll-system/internal/api/middleware"
	"github.com/evento-nomina/payroll-system/internal/core/domain"
	"github.com/evento-nomina/payroll-system/internal/core/ports"
	"github.com/evento-nomina/payroll-system/internal/core/service"
	mongodb "github.com/evento-nomina/payroll-system/internal/infrastructure/db/mongo"
	redisdb "github.com/evento-nomina/payroll-system/internal/infrastructure/db/redis"
	"github.com/evento-nomina/payroll-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("payroll"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	reportRepo := mongodb.NewReportRepository(db)
	limiter := redisdb.NewSignInLimiter(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(accountRepo, tokenService, limiter, log)
	reportService := service.NewReportService(reportRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService, log)
	reportHandler := handler.NewReportHandler(reportService, accountRepo, log)
	authRequired := middleware.Auth(tokenService)
	adminOnly := middleware.RequireCapability(domain.CapabilityAdmin)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.SignUp)
	e.POST("/auth/signin", authHandler.SignIn)
	e.GET("/auth/verify", authHandler.Verify)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- Report routes ---
	reports := e.Group("/v1/reports", authRequired)
	reports.POST("", reportHandler.Submit)
	reports.GET("", reportHandler.List, adminOnly)
	reports.GET("/export", reportHandler.Export, adminOnly)
	reports.PATCH("/:id/approve", reportHandler.Approve, adminOnly)
	reports.PATCH("/:id/reject", reportHandler.Reject, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
