package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"identity-service/app/port"
	"identity-service/app/rest/middleware"
	apperrors "identity-service/app/utils/errors"
	"identity-service/app/utils/validator"
)

// CookieSettings controls the token cookie written at login
type CookieSettings struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	cookie      CookieSettings
	validator   *validator.Validator
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, cookie CookieSettings, logger *slog.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = middleware.DefaultTokenCookieName
	}
	return &AuthHandler{
		authUsecase: authUsecase,
		cookie:      cookie,
		validator:   validator.New(),
		logger:      logger,
	}
}

// LoginRequest is the login payload
type LoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// Login verifies an ID token and, on success, stores it in the token cookie
// for subsequent requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "missing idToken in request body",
			Code:  string(apperrors.ErrCodeBadRequest),
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "missing idToken in request body",
			Code:  string(apperrors.ErrCodeMissingField),
		})
	}

	claim, err := h.authUsecase.Verify(c.Request().Context(), req.IDToken)
	if err != nil {
		return h.respondError(c, err)
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    req.IDToken,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("login successful", "subject_id", claim.SubjectID, "provider", claim.ProviderID)

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    claim,
	})
}

// Logout clears the token cookie. The token itself stays valid until it
// expires at the provider; there is nothing to revoke here.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Logout successful",
	})
}

// Verify checks a token without logging in or touching cookies
func (h *AuthHandler) Verify(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "missing idToken in request body",
			Code:  string(apperrors.ErrCodeBadRequest),
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "missing idToken in request body",
			Code:  string(apperrors.ErrCodeMissingField),
		})
	}

	claim, err := h.authUsecase.Verify(c.Request().Context(), req.IDToken)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, VerifyResponse{
		Valid: true,
		User:  claim,
	})
}

// Me returns the claim bound by the require-auth middleware
func (h *AuthHandler) Me(c echo.Context) error {
	claim := middleware.BoundClaim(c)
	if claim == nil {
		return h.respondError(c, apperrors.ErrNoCredential)
	}

	return c.JSON(http.StatusOK, MeResponse{
		Authenticated: true,
		User:          claim,
	})
}

// Status reports authentication state; the claim is nil for anonymous
// requests since this sits behind the optional-auth middleware.
func (h *AuthHandler) Status(c echo.Context) error {
	claim := middleware.BoundClaim(c)

	return c.JSON(http.StatusOK, StatusResponse{
		Authenticated: claim != nil,
		User:          claim,
	})
}

func (h *AuthHandler) respondError(c echo.Context, err error) error {
	message := "internal server error"
	if appErr, ok := apperrors.AsAppError(err); ok {
		message = appErr.Message
	}

	return c.JSON(apperrors.GetHTTPStatusCode(err), ErrorResponse{
		Error: message,
		Code:  string(apperrors.GetErrorCode(err)),
	})
}
