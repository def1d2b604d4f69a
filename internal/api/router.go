package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/barcrafted/bar-system/docs"
	"github.com/barcrafted/bar-system/internal/api/handler"
	"github.com/barcrafted/bar-system/internal/api/middleware"
	"github.com/barcrafted/bar-system/internal/core/domain"
	"github.com/barcrafted/bar-system/internal/core/service"
	"github.com/barcrafted/bar-system/internal/core/token"
	"github.com/barcrafted/bar-system/internal/infrastructure/config"
	mongodb "github.com/barcrafted/bar-system/internal/infrastructure/db/mongo"
	redisdb "github.com/barcrafted/bar-system/internal/infrastructure/db/redis"
	"github.com/barcrafted/bar-system/internal/infrastructure/delivery"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	dispatcher *delivery.Dispatcher,
	log zerolog.Logger,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("barsystem"))

	// --- Dependencies ---
	codec, err := token.NewCodec(token.Config{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		InviteSecret:  cfg.Auth.InviteSecret,
		AccessTTL:     cfg.Auth.AccessTTL(),
		RefreshTTL:    cfg.Auth.RefreshTTL(),
		InviteTTL:     cfg.Auth.InviteTTL(),
	}, log)
	if err != nil {
		return nil, err
	}

	userRepo := mongodb.NewUserRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db)
	barRepo := mongodb.NewBarRepository(db)

	authService := service.NewAuthService(userRepo, barRepo, codec, log)
	inviteService := service.NewInviteService(userRepo, tokenRepo, codec, dispatcher, cfg.Auth.BcryptCost, cfg.Auth.InviteTTL(), log)
	resetService := service.NewResetService(userRepo, tokenRepo, dispatcher, cfg.Auth.BcryptCost, cfg.Auth.CodeTTL(), log)
	accountService := service.NewAccountService(userRepo, inviteService, dispatcher, cfg.Auth.BcryptCost, log)

	authHandler := handler.NewAuthHandler(authService)
	inviteHandler := handler.NewInviteHandler(inviteService, accountService, codec)
	passwordHandler := handler.NewPasswordHandler(resetService)
	adminHandler := handler.NewAdminHandler(accountService)
	barHandler := handler.NewBarHandler(barRepo)

	requireAuth := middleware.Auth(codec)
	requireInvite := middleware.InviteSession(codec)
	throttler := redisdb.NewThrottler(rdb, cfg.Throttle.Limit, cfg.Throttle.Window())
	throttled := middleware.Throttle(throttler, log)

	// --- Credential endpoints (throttled) ---
	e.POST("/auth/login", authHandler.Login, throttled)
	e.POST("/auth/bar/login", authHandler.StaffLogin, throttled)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Invite flow ---
	e.POST("/auth/invite/session", inviteHandler.OpenSession, throttled)
	e.POST("/auth/invite/password", inviteHandler.ConfirmPassword, requireInvite)
	e.POST("/auth/invite/reissue", inviteHandler.Reissue, requireInvite)

	// --- Password reset (authenticated account) ---
	e.POST("/auth/password/reset", passwordHandler.RequestReset, requireAuth, throttled)
	e.POST("/auth/password/confirm", passwordHandler.ConfirmReset, requireAuth, throttled)

	// --- Admin ---
	admin := e.Group("/admin", requireAuth)
	admin.POST("/users", adminHandler.CreateStaff, middleware.RequireAnyRole(domain.RoleBarAdmin, domain.RoleSuperAdmin))
	admin.POST("/users/:id/invite", adminHandler.ReissueInvite, middleware.RequireAnyRole(domain.RoleBarAdmin, domain.RoleSuperAdmin))
	admin.PUT("/users/:id/roles", adminHandler.UpdateRoles, middleware.RequireAnyRole(domain.RoleSuperAdmin))

	// --- Workplace data ---
	e.GET("/bars/:key/favorites", barHandler.Favorites, requireAuth,
		middleware.RequireAnyRole(domain.RoleStaff, domain.RoleBarAdmin, domain.RoleSuperAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
