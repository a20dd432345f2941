package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"identity-service/app/domain"
	"identity-service/app/port"
)

// UserRepository implements port.UserRepository for PostgreSQL. The users
// table carries a unique constraint on subject_id; the upsert leans on it to
// make concurrent first-time creates collapse into a single record.
type UserRepository struct {
	db        DatabaseIface
	available bool
	logger    *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository. A nil db marks
// the store unavailable for the lifetime of the process.
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:        db,
		available: db != nil,
		logger:    logger.With("component", "user_repository"),
	}
}

// Available reports whether the backing store was reachable at startup
func (r *UserRepository) Available() bool {
	return r.available
}

// FindBySubjectID looks up a user record by its external subject id
func (r *UserRepository) FindBySubjectID(ctx context.Context, subjectID string) (*domain.UserRecord, error) {
	if !r.available {
		return nil, fmt.Errorf("user store unavailable")
	}

	query := `
		SELECT
			id, subject_id, email, display_name, email_verified,
			picture_url, provider_id, created_at, updated_at
		FROM users
		WHERE subject_id = $1`

	record := &domain.UserRecord{}
	err := r.db.QueryRow(ctx, query, subjectID).Scan(
		&record.ID,
		&record.SubjectID,
		&record.Email,
		&record.DisplayName,
		&record.EmailVerified,
		&record.PictureURL,
		&record.ProviderID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to find user", "subject_id", subjectID, "error", err)
		return nil, fmt.Errorf("failed to find user by subject id: %w", err)
	}

	return record, nil
}

// Upsert persists a record, creating it or refreshing its mutable fields.
// On conflict the stored id and created_at win; only mutable fields and
// updated_at are overwritten, so the loser of a concurrent first-time create
// degrades into a plain refresh.
func (r *UserRepository) Upsert(ctx context.Context, record *domain.UserRecord) (*domain.UserRecord, error) {
	if !r.available {
		return nil, fmt.Errorf("user store unavailable")
	}

	query := `
		INSERT INTO users (
			id, subject_id, email, display_name, email_verified,
			picture_url, provider_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (subject_id) DO UPDATE SET
			email          = EXCLUDED.email,
			display_name   = EXCLUDED.display_name,
			email_verified = EXCLUDED.email_verified,
			picture_url    = EXCLUDED.picture_url,
			provider_id    = EXCLUDED.provider_id,
			updated_at     = EXCLUDED.updated_at
		RETURNING
			id, subject_id, email, display_name, email_verified,
			picture_url, provider_id, created_at, updated_at`

	stored := &domain.UserRecord{}
	err := r.db.QueryRow(ctx, query,
		record.ID,
		record.SubjectID,
		record.Email,
		record.DisplayName,
		record.EmailVerified,
		record.PictureURL,
		record.ProviderID,
		record.CreatedAt,
		record.UpdatedAt,
	).Scan(
		&stored.ID,
		&stored.SubjectID,
		&stored.Email,
		&stored.DisplayName,
		&stored.EmailVerified,
		&stored.PictureURL,
		&stored.ProviderID,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("failed to upsert user", "subject_id", record.SubjectID, "error", err)
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return stored, nil
}
