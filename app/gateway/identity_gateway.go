package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"identity-service/app/domain"
	"identity-service/app/port"
)

// IdentityGateway implements port.IdentityGateway. It submits credentials to
// the identity provider driver and normalizes the verified token into an
// IdentityClaim, so nothing above it sees provider-shaped data.
type IdentityGateway struct {
	verifier port.TokenVerifier
	logger   *slog.Logger
}

// NewIdentityGateway creates a new IdentityGateway instance
func NewIdentityGateway(verifier port.TokenVerifier, logger *slog.Logger) port.IdentityGateway {
	return &IdentityGateway{
		verifier: verifier,
		logger:   logger.With("component", "identity_gateway"),
	}
}

// VerifyToken verifies a raw ID token and returns the normalized claim.
// A verified token without a subject id is rejected like any invalid token.
func (g *IdentityGateway) VerifyToken(ctx context.Context, idToken string) (*domain.IdentityClaim, error) {
	token, err := g.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	claim, err := domain.NewIdentityClaim(token)
	if err != nil {
		g.logger.Warn("verified token rejected during normalization", "error", err)
		return nil, fmt.Errorf("token normalization failed: %w", err)
	}

	return claim, nil
}
