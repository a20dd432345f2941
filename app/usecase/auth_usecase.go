package usecase

import (
	"context"
	"log/slog"

	"identity-service/app/port"
	apperrors "identity-service/app/utils/errors"

	"identity-service/app/domain"
)

// AuthUseCase implements credential verification business logic
type AuthUseCase struct {
	gateway port.IdentityGateway
	logger  *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase instance
func NewAuthUseCase(gateway port.IdentityGateway, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{
		gateway: gateway,
		logger:  logger.With("component", "auth_usecase"),
	}
}

// Verify validates a credential against the identity provider. Every
// provider-side failure (malformed token, expired token, provider
// unreachable, provider degraded) collapses into INVALID_CREDENTIAL: the
// caller cannot distinguish them and must not treat any of them as a server
// fault. A single attempt is made per call, no retries.
func (uc *AuthUseCase) Verify(ctx context.Context, credential string) (*domain.IdentityClaim, error) {
	if credential == "" {
		return nil, apperrors.ErrInvalidCredential
	}

	claim, err := uc.gateway.VerifyToken(ctx, credential)
	if err != nil {
		uc.logger.Warn("credential verification failed", "error", err)
		return nil, apperrors.ErrInvalidCredential.WithCause(err)
	}

	return claim, nil
}
