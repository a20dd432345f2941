package rest

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"identity-service/app/port"
	"identity-service/app/rest/handlers"
	custommw "identity-service/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger      *slog.Logger
	AuthUsecase port.AuthUsecase
	UserUsecase port.UserUsecase

	Cookie handlers.CookieSettings

	CORSAllowedOrigins []string
	EnableRateLimit    bool
	EnableDebug        bool

	// Dependency probes for readiness. StoreCheck may be nil when the
	// user store is unavailable.
	StoreCheck       func(context.Context) error
	ProviderDegraded func() bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	// Create handlers
	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Cookie, config.Logger)
	profileHandler := handlers.NewProfileHandler(config.UserUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.Logger, config.StoreCheck, config.ProviderDegraded)

	// Create middleware
	authMiddleware := custommw.NewAuthMiddleware(config.AuthUsecase, config.UserUsecase, config.Cookie.Name, config.Logger)

	// Global middleware
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(custommw.NewCORSMiddleware(custommw.DefaultCORSConfig(config.CORSAllowedOrigins)))
	e.Use(custommw.SecurityHeaders())

	if config.EnableRateLimit {
		rateLimiter := custommw.NewRateLimiter()
		e.Use(rateLimiter.RateLimit())
	}

	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	// API versioning
	v1 := e.Group("/v1")

	// Health endpoints (no auth required)
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/health/ready", healthHandler.ReadinessCheck)
	v1.GET("/health/live", healthHandler.LivenessCheck)
	v1.GET("/version", healthHandler.GetVersion)

	// Authentication endpoints
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/verify", authHandler.Verify)
	auth.GET("/me", authHandler.Me, authMiddleware.RequireAuth())
	auth.GET("/status", authHandler.Status, authMiddleware.OptionalAuth())

	// Profile endpoints: authenticated with a resolved local record
	profile := v1.Group("/profile")
	profile.Use(authMiddleware.RequireAuth())
	profile.Use(authMiddleware.RequireUser())
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.PATCH("", profileHandler.UpdateProfile)
	profile.GET("/stats", profileHandler.GetStats)
	profile.POST("/sync", profileHandler.SyncProfile)

	return e
}
