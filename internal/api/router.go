package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bountyhq/platform-api/docs"
	"github.com/bountyhq/platform-api/internal/api/handler"
	"github.com/bountyhq/platform-api/internal/api/middleware"
	"github.com/bountyhq/platform-api/internal/core/guard"
	"github.com/bountyhq/platform-api/internal/core/ports"
	"github.com/bountyhq/platform-api/internal/core/service"
	"github.com/bountyhq/platform-api/internal/infrastructure/config"
	mongodb "github.com/bountyhq/platform-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bountyhq/platform-api/internal/infrastructure/db/redis"
	"github.com/bountyhq/platform-api/internal/infrastructure/identity"
	"github.com/bountyhq/platform-api/internal/infrastructure/notify"
)

// NewRouter builds and returns the Echo instance with the full
// authorization pipeline and all routes registered. The audit sink is
// owned by the caller so its lifecycle outlives request handling.
func NewRouter(db *mongo.Database, rdb *redis.Client, sink ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bounty"))

	// --- Pipeline dependencies ---
	provider := identity.NewJWTProvider(cfg.JWTSecret, cfg.TokenTTL)
	profileRepo := mongodb.NewProfileRepository(db)
	profiles := redisdb.NewProfileCache(rdb, profileRepo, cfg.Redis.ProfileTTL, log)

	resolver := service.NewSessionResolver(provider, log)
	builder := service.NewContextBuilder(profiles, log)
	authMW := middleware.Auth(resolver, builder)

	// --- Domain services ---
	identitySvc := service.NewIdentityService(
		mongodb.NewUserRepository(db),
		profileRepo,
		profiles,
		provider,
		notify.NewConsoleNotificationService(log),
		log,
	)
	orgSvc := service.NewOrganizationService(mongodb.NewOrganizationRepository(db), sink)

	identityHandler := handler.NewIdentityHandler(identitySvc)
	orgHandler := handler.NewOrganizationHandler(orgSvc)

	// --- Public routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/identity/register", identityHandler.Register)
	v1.POST("/identity/login", identityHandler.Login)
	v1.GET("/openapi.json", handler.NewOpenAPIHandler().Spec)

	// --- Authenticated routes, gated by per-route guard chains ---
	v1.GET("/identity/me", identityHandler.Me,
		authMW, middleware.Guards(guard.Chain{guard.Authenticated()}, nil))
	v1.POST("/identity/verify", identityHandler.Verify,
		authMW, middleware.Guards(guard.Chain{guard.Authenticated()}, nil))

	v1.POST("/organization", orgHandler.Create,
		authMW, middleware.Guards(guard.Chain{guard.Authenticated(), guard.Verified()}, nil))
	v1.GET("/organization", orgHandler.List,
		authMW, middleware.Guards(guard.Chain{guard.Authenticated(), guard.PlatformAdmin()}, nil))
	v1.GET("/organization/:id", orgHandler.Get,
		authMW, middleware.Guards(guard.Chain{guard.Authenticated()}, nil))
	v1.PUT("/organization/:id", orgHandler.Update,
		authMW, middleware.Guards(guard.Chain{
			guard.Authenticated(),
			guard.Verified(),
			guard.OrgAdminOf(profiles.IsOrgAdmin),
		}, middleware.OrgIDParam))

	// --- Health probes and operational endpoints ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoSwagger.WrapHandler)

	return e
}
