package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Version is reported by the health and version endpoints
const Version = "0.1.0"

const serviceName = "identity-service"

var startTime = time.Now()

// HealthHandler handles health check HTTP requests
type HealthHandler struct {
	logger           *slog.Logger
	storeCheck       func(context.Context) error
	providerDegraded func() bool
}

// NewHealthHandler creates a new health handler. storeCheck may be nil when
// the service runs without a reachable database.
func NewHealthHandler(logger *slog.Logger, storeCheck func(context.Context) error, providerDegraded func() bool) *HealthHandler {
	return &HealthHandler{
		logger:           logger,
		storeCheck:       storeCheck,
		providerDegraded: providerDegraded,
	}
}

// HealthCheck performs a basic health check
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(startTime).String(),
	})
}

// ReadinessCheck reports the state of the service's dependencies. The
// service stays up when they are down, so a degraded dependency yields 503
// here without affecting liveness.
func (h *HealthHandler) ReadinessCheck(c echo.Context) error {
	checks := make(map[string]HealthStatus)
	ready := true

	if h.storeCheck == nil {
		checks["database"] = HealthStatus{Status: "unavailable", Message: "user store not connected"}
		ready = false
	} else if err := h.storeCheck(c.Request().Context()); err != nil {
		checks["database"] = HealthStatus{Status: "unhealthy", Message: err.Error()}
		ready = false
	} else {
		checks["database"] = HealthStatus{Status: "healthy"}
	}

	if h.providerDegraded != nil && h.providerDegraded() {
		checks["identity_provider"] = HealthStatus{Status: "degraded", Message: "verification rejecting all tokens"}
		ready = false
	} else {
		checks["identity_provider"] = HealthStatus{Status: "healthy"}
	}

	status := "ready"
	code := http.StatusOK
	if !ready {
		status = "not_ready"
		code = http.StatusServiceUnavailable
	}

	return c.JSON(code, ReadinessResponse{
		Status: status,
		Checks: checks,
	})
}

// LivenessCheck reports that the process is alive
func (h *HealthHandler) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "alive",
	})
}

// GetVersion returns the service version
func (h *HealthHandler) GetVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, VersionResponse{
		Version: Version,
		Service: serviceName,
	})
}
