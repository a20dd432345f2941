package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"identity-service/app/port"
	"identity-service/app/rest/middleware"
	apperrors "identity-service/app/utils/errors"
	"identity-service/app/utils/validator"
)

// ProfileHandler handles profile HTTP requests. All routes sit behind
// require-auth + require-user, so a bound record is guaranteed.
type ProfileHandler struct {
	userUsecase port.UserUsecase
	validator   *validator.Validator
	logger      *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userUsecase port.UserUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		userUsecase: userUsecase,
		validator:   validator.New(),
		logger:      logger,
	}
}

// UpdateProfileRequest is the profile update payload
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,notblank,max=200"`
}

// GetProfile returns the record bound by the require-user middleware
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	record := middleware.BoundRecord(c)
	if record == nil {
		return h.respondError(c, apperrors.ErrInternalError)
	}

	return c.JSON(http.StatusOK, ProfileResponse{
		Message: "Profile retrieved successfully",
		User:    record,
	})
}

// UpdateProfile changes the stored display name. A payload without
// display_name is a no-op and returns the current record.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	record := middleware.BoundRecord(c)
	if record == nil {
		return h.respondError(c, apperrors.ErrInternalError)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "no data provided",
			Code:  string(apperrors.ErrCodeBadRequest),
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "display_name cannot be empty",
			Code:  string(apperrors.ErrCodeValidationFailed),
		})
	}

	if req.DisplayName == nil {
		return c.JSON(http.StatusOK, ProfileResponse{
			Message: "Profile unchanged",
			User:    record,
		})
	}

	updated, err := h.userUsecase.UpdateDisplayName(
		c.Request().Context(),
		record.SubjectID,
		strings.TrimSpace(*req.DisplayName),
	)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, ProfileResponse{
		Message: "Profile updated successfully",
		User:    updated,
	})
}

// GetStats returns derived account metadata for the bound record
func (h *ProfileHandler) GetStats(c echo.Context) error {
	record := middleware.BoundRecord(c)
	if record == nil {
		return h.respondError(c, apperrors.ErrInternalError)
	}

	return c.JSON(http.StatusOK, StatsResponse{
		Message: "User stats retrieved successfully",
		Stats: ProfileStats{
			AccountAgeDays: record.AccountAgeDays(time.Now().UTC()),
			LastUpdated:    record.UpdatedAt,
			EmailVerified:  record.EmailVerified,
			Provider:       record.ProviderID,
		},
	})
}

// SyncProfile re-resolves the record from the current claim, refreshing
// mutable fields with the provider's latest data.
func (h *ProfileHandler) SyncProfile(c echo.Context) error {
	claim := middleware.BoundClaim(c)
	if claim == nil {
		return h.respondError(c, apperrors.ErrNoCredential)
	}

	record, err := h.userUsecase.Resolve(c.Request().Context(), claim)
	if err != nil {
		return h.respondError(c, err)
	}

	h.logger.Info("profile synced", "subject_id", claim.SubjectID)

	return c.JSON(http.StatusOK, ProfileResponse{
		Message: "Profile synced successfully",
		User:    record,
	})
}

func (h *ProfileHandler) respondError(c echo.Context, err error) error {
	message := "internal server error"
	if appErr, ok := apperrors.AsAppError(err); ok {
		message = appErr.Message
	}

	return c.JSON(apperrors.GetHTTPStatusCode(err), ErrorResponse{
		Error: message,
		Code:  string(apperrors.GetErrorCode(err)),
	})
}
