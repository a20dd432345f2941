package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go

import (
	"context"

	"identity-service/app/domain"
)

// UserUsecase defines user resolution business logic
type UserUsecase interface {
	// Resolve maps a claim to its durable record, creating it on first
	// sight and refreshing mutable fields otherwise.
	Resolve(ctx context.Context, claim *domain.IdentityClaim) (*domain.UserRecord, error)

	// UpdateDisplayName changes the stored display name of an existing
	// record.
	UpdateDisplayName(ctx context.Context, subjectID, displayName string) (*domain.UserRecord, error)
}

// UserRepository defines user data access. Each call acquires and releases
// its connection from the pool; no connection is held across requests.
type UserRepository interface {
	FindBySubjectID(ctx context.Context, subjectID string) (*domain.UserRecord, error)
	Upsert(ctx context.Context, record *domain.UserRecord) (*domain.UserRecord, error)

	// Available reports the process-wide reachability flag of the backing
	// store. When false the resolver must not be invoked.
	Available() bool
}
