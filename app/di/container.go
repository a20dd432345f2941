package di

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"identity-service/app/config"
	"identity-service/app/driver/firebase"
	"identity-service/app/driver/postgres"
	"identity-service/app/gateway"
	"identity-service/app/port"
	"identity-service/app/rest"
	"identity-service/app/rest/handlers"
	"identity-service/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB             *postgres.DB
	FirebaseClient *firebase.Client

	// Gateways
	IdentityGateway port.IdentityGateway

	// Usecases
	AuthUsecase port.AuthUsecase
	UserUsecase port.UserUsecase
}

// NewContainer creates and initializes a new dependency injection container.
// A failed database connection is not fatal: the service still verifies
// tokens, and the user store reports unavailable until it comes back.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var userRepository port.UserRepository

	db, err := postgres.NewConnection(cfg, logger)
	if err != nil {
		logger.Warn("Database unavailable, user resolution disabled", "error", err)
		userRepository = postgres.NewUserRepository(nil, logger)
	} else {
		container.DB = db
		userRepository = postgres.NewUserRepository(db.Pool(), logger)
	}

	// The Firebase client defers provider initialization until the first
	// verification, so construction never fails here.
	container.FirebaseClient = firebase.NewClient(cfg, logger)

	tokenVerifier := firebase.NewAdapter(container.FirebaseClient)
	container.IdentityGateway = gateway.NewIdentityGateway(tokenVerifier, logger)

	container.AuthUsecase = usecase.NewAuthUseCase(container.IdentityGateway, logger)
	container.UserUsecase = usecase.NewUserUseCase(userRepository, logger)

	logger.Info("Container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	var storeCheck func(context.Context) error
	if c.DB != nil {
		storeCheck = c.DB.HealthCheck
	}

	routerConfig := rest.RouterConfig{
		Logger:      c.Logger,
		AuthUsecase: c.AuthUsecase,
		UserUsecase: c.UserUsecase,
		Cookie: handlers.CookieSettings{
			Name:   c.Config.TokenCookieName,
			MaxAge: c.Config.TokenCookieMaxAge,
			Secure: c.Config.SecureCookies,
		},
		CORSAllowedOrigins: c.Config.CORSAllowedOrigins,
		EnableRateLimit:    c.Config.EnableRateLimit,
		EnableDebug:        c.Config.LogLevel == "debug",
		StoreCheck:         storeCheck,
		ProviderDegraded:   c.FirebaseClient.Degraded,
	}

	router := rest.NewRouter(routerConfig)

	c.Logger.Info("Full API router created")
	return router
}

// Close closes all resources
func (c *Container) Close() error {
	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("Container closed successfully")
	return nil
}
