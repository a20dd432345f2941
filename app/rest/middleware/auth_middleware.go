package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"identity-service/app/domain"
	"identity-service/app/port"
	apperrors "identity-service/app/utils/errors"
)

// Context keys for request-scoped auth state. The state lives on the echo
// context of a single request; nothing ambient or process-global.
const (
	claimContextKey  = "identity_claim"
	recordContextKey = "user_record"
)

const bearerPrefix = "Bearer "

// DefaultTokenCookieName is the cookie carrying the ID token between
// requests after login.
const DefaultTokenCookieName = "firebase_token"

// AuthMiddleware binds per-request authentication state for handlers
type AuthMiddleware struct {
	authUsecase port.AuthUsecase
	userUsecase port.UserUsecase
	cookieName  string
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authUsecase port.AuthUsecase, userUsecase port.UserUsecase, cookieName string, logger *slog.Logger) *AuthMiddleware {
	if cookieName == "" {
		cookieName = DefaultTokenCookieName
	}
	return &AuthMiddleware{
		authUsecase: authUsecase,
		userUsecase: userUsecase,
		cookieName:  cookieName,
		logger:      logger,
	}
}

// ExtractCredential pulls an opaque bearer credential out of the request.
// Search order, first match wins: Authorization header of the exact form
// "Bearer <token>", then the token cookie, then the "token" query
// parameter. Absence of all three is not an error.
func (m *AuthMiddleware) ExtractCredential(c echo.Context) string {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimPrefix(auth, bearerPrefix)
	}

	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return c.QueryParam("token")
}

// RequireAuth fails the request unless a credential is present and verifies.
// On success the claim is bound into the request context. Missing or invalid
// credentials answer 401, never 5xx.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := m.ExtractCredential(c)
			if credential == "" {
				return respondError(c, apperrors.ErrNoCredential)
			}

			claim, err := m.authUsecase.Verify(c.Request().Context(), credential)
			if err != nil {
				return respondError(c, err)
			}

			c.Set(claimContextKey, claim)
			return next(c)
		}
	}
}

// OptionalAuth binds a claim when a valid credential is present and proceeds
// without one otherwise. It never fails the request.
func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			credential := m.ExtractCredential(c)
			if credential == "" {
				return next(c)
			}

			claim, err := m.authUsecase.Verify(c.Request().Context(), credential)
			if err != nil {
				m.logger.Debug("optional auth failed", "error", err)
				return next(c)
			}

			c.Set(claimContextKey, claim)
			return next(c)
		}
	}
}

// RequireUser resolves the bound claim to a durable user record and binds
// it. It presupposes RequireAuth ran earlier in the chain. Store
// unavailability answers 503 and resolution faults 500, both distinct from
// the 401 of a failed authentication.
func (m *AuthMiddleware) RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim := BoundClaim(c)
			if claim == nil {
				return respondError(c, apperrors.ErrNoCredential)
			}

			record, err := m.userUsecase.Resolve(c.Request().Context(), claim)
			if err != nil {
				m.logger.Error("user resolution failed",
					"subject_id", claim.SubjectID,
					"error", err)
				return respondError(c, err)
			}

			c.Set(recordContextKey, record)
			return next(c)
		}
	}
}

// BoundClaim returns the identity claim bound to this request, or nil
func BoundClaim(c echo.Context) *domain.IdentityClaim {
	claim, _ := c.Get(claimContextKey).(*domain.IdentityClaim)
	return claim
}

// BoundRecord returns the user record bound to this request, or nil.
// A record is never bound without a prior claim.
func BoundRecord(c echo.Context) *domain.UserRecord {
	record, _ := c.Get(recordContextKey).(*domain.UserRecord)
	return record
}

// respondError renders an error as a JSON payload with its mapped status
func respondError(c echo.Context, err error) error {
	code := apperrors.GetErrorCode(err)
	message := "internal server error"
	if appErr, ok := apperrors.AsAppError(err); ok {
		message = appErr.Message
	}

	return c.JSON(apperrors.GetHTTPStatusCode(err), map[string]interface{}{
		"error": message,
		"code":  code,
	})
}
