package handlers

import (
	"time"

	"identity-service/app/domain"
)

// ErrorResponse is the error payload shared by all handlers
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// LoginResponse is returned by login and logout
type LoginResponse struct {
	Message string                `json:"message"`
	User    *domain.IdentityClaim `json:"user,omitempty"`
}

// StatusResponse reports whether the request carried a valid credential
type StatusResponse struct {
	Authenticated bool                  `json:"authenticated"`
	User          *domain.IdentityClaim `json:"user"`
}

// VerifyResponse is returned by the stateless token verification endpoint
type VerifyResponse struct {
	Valid bool                  `json:"valid"`
	User  *domain.IdentityClaim `json:"user"`
}

// MeResponse wraps the bound claim of an authenticated request
type MeResponse struct {
	Authenticated bool                  `json:"authenticated"`
	User          *domain.IdentityClaim `json:"user"`
}

// ProfileResponse wraps a durable user record
type ProfileResponse struct {
	Message string             `json:"message"`
	User    *domain.UserRecord `json:"user"`
}

// ProfileStats carries derived account metadata
type ProfileStats struct {
	AccountAgeDays int       `json:"account_age_days"`
	LastUpdated    time.Time `json:"last_updated"`
	EmailVerified  bool      `json:"email_verified"`
	Provider       string    `json:"provider"`
}

// StatsResponse wraps profile statistics
type StatsResponse struct {
	Message string       `json:"message"`
	Stats   ProfileStats `json:"stats"`
}

// HealthResponse is the basic health check payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}

// HealthStatus describes one dependency in a readiness check
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ReadinessResponse is the readiness check payload
type ReadinessResponse struct {
	Status string                  `json:"status"`
	Checks map[string]HealthStatus `json:"checks"`
}

// VersionResponse is the version endpoint payload
type VersionResponse struct {
	Version string `json:"version"`
	Service string `json:"service"`
}
