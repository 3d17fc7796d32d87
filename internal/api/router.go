package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identitylab/account-system/internal/api/handler"
	"github.com/identitylab/account-system/internal/api/middleware"
	"github.com/identitylab/account-system/internal/core/domain"
	"github.com/identitylab/account-system/internal/core/ports"
	"github.com/identitylab/account-system/internal/infrastructure/queue"
)

// RouterDeps carries the wired application services plus the optional
// backing clients the readiness probe reports on. MongoDB and RedisClient
// may be nil when the memory store runs without a throttle.
type RouterDeps struct {
	AuthService    ports.AuthService
	AccountService ports.AccountService
	Events         *queue.Dispatcher
	MongoDB        *mongo.Database
	RedisClient    *redis.Client
	JWTSecret      string
	Log            zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	accountHandler := handler.NewAccountHandler(deps.AccountService)
	paymentHandler := handler.NewPaymentHandler(deps.AccountService)
	notificationHandler := handler.NewNotificationHandler(deps.AccountService)
	analyticsHandler := handler.NewAnalyticsHandler(deps.Events)

	authMW := middleware.Auth(deps.JWTSecret)
	sessionMW := middleware.Session(deps.AuthService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)
	e.GET("/auth/session", authHandler.Session, authMW)

	// --- Account routes (authenticated, live session required) ---
	v1 := e.Group("/v1", authMW, sessionMW, middleware.RBAC(domain.RoleAdmin, domain.RoleUser))
	v1.GET("/accounts/me", accountHandler.Me)
	v1.PATCH("/accounts/me/profile", accountHandler.UpdateProfile)
	v1.GET("/accounts/me/permissions", accountHandler.Permissions)
	v1.POST("/authz/resource-check", accountHandler.CheckResource)
	v1.POST("/payments", paymentHandler.ProcessPayment)
	v1.POST("/subscriptions", paymentHandler.CreateSubscription)
	v1.POST("/notifications", notificationHandler.Send)
	v1.GET("/reports/activity", accountHandler.ActivityReport)
	v1.POST("/events", analyticsHandler.Track)

	// Admin-only lookups.
	v1.GET("/accounts/:id/report", accountHandler.AccountReport, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.MongoDB, deps.RedisClient)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
