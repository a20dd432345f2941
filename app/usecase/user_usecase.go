package usecase

import (
	"context"
	"errors"
	"log/slog"

	"identity-service/app/domain"
	"identity-service/app/port"
	apperrors "identity-service/app/utils/errors"
)

// UserUseCase implements user resolution business logic. It is the sole
// writer of user records; handlers mutate records only through it.
type UserUseCase struct {
	userRepo port.UserRepository
	logger   *slog.Logger
}

// NewUserUseCase creates a new UserUseCase instance
func NewUserUseCase(userRepo port.UserRepository, logger *slog.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		logger:   logger.With("component", "user_usecase"),
	}
}

// Resolve maps a verified claim to its durable record. First sight creates
// the record with created_at == updated_at; every later resolution refreshes
// mutable fields and updated_at, even when nothing changed. Persistence
// failures surface as RESOLUTION_FAILED, never as auth failures, and are not
// retried here.
func (uc *UserUseCase) Resolve(ctx context.Context, claim *domain.IdentityClaim) (*domain.UserRecord, error) {
	if !uc.userRepo.Available() {
		return nil, apperrors.ErrPersistenceUnavailable
	}

	existing, err := uc.userRepo.FindBySubjectID(ctx, claim.SubjectID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, apperrors.NewResolutionError(err)
	}

	var record *domain.UserRecord
	if existing != nil {
		existing.ApplyClaim(claim)
		record = existing
	} else {
		record, err = domain.NewUserRecord(claim)
		if err != nil {
			return nil, apperrors.NewResolutionError(err)
		}
		uc.logger.Info("creating user record", "subject_id", claim.SubjectID)
	}

	stored, err := uc.userRepo.Upsert(ctx, record)
	if err != nil {
		return nil, apperrors.NewResolutionError(err)
	}

	return stored, nil
}

// UpdateDisplayName changes the stored display name of an existing record
func (uc *UserUseCase) UpdateDisplayName(ctx context.Context, subjectID, displayName string) (*domain.UserRecord, error) {
	if !uc.userRepo.Available() {
		return nil, apperrors.ErrPersistenceUnavailable
	}

	record, err := uc.userRepo.FindBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound.WithDetails("user record not found")
		}
		return nil, apperrors.NewResolutionError(err)
	}

	record.SetDisplayName(displayName)

	stored, err := uc.userRepo.Upsert(ctx, record)
	if err != nil {
		return nil, apperrors.NewResolutionError(err)
	}

	uc.logger.Info("updated display name", "subject_id", subjectID)
	return stored, nil
}
