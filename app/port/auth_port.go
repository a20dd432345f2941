package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go

import (
	"context"

	"identity-service/app/domain"
)

// AuthUsecase defines the credential verification business logic. Verify
// returns a claim for a valid credential and an INVALID_CREDENTIAL error for
// everything else; provider-side faults never propagate as server errors.
type AuthUsecase interface {
	Verify(ctx context.Context, credential string) (*domain.IdentityClaim, error)
}

// IdentityGateway normalizes verified provider tokens into identity claims.
// It acts as an anti-corruption layer between the domain and the identity
// provider SDK.
type IdentityGateway interface {
	VerifyToken(ctx context.Context, idToken string) (*domain.IdentityClaim, error)
}

// TokenVerifier is implemented by the identity provider driver. The driver
// initializes its client lazily and idempotently; when initialization has
// failed it answers every verification with an error instead of panicking.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*domain.FirebaseToken, error)
}
