package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewUserRecord(t *testing.T) {
	claim := &IdentityClaim{
		SubjectID:     "subject-123",
		Email:         "user@example.com",
		EmailVerified: true,
		DisplayName:   "Test User",
		PictureURL:    "https://example.com/avatar.png",
		ProviderID:    "google.com",
	}

	record, err := NewUserRecord(claim)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, claim.SubjectID, record.SubjectID)
	assert.Equal(t, claim.Email, record.Email)
	assert.Equal(t, claim.DisplayName, record.DisplayName)
	assert.True(t, record.EmailVerified)
	assert.Equal(t, claim.ProviderID, record.ProviderID)
	assert.Equal(t, record.CreatedAt, record.UpdatedAt)
}

func TestNewUserRecord_MissingSubject(t *testing.T) {
	record, err := NewUserRecord(&IdentityClaim{Email: "user@example.com"})

	assert.ErrorIs(t, err, ErrMissingSubject)
	assert.Nil(t, record)

	record, err = NewUserRecord(nil)
	assert.ErrorIs(t, err, ErrMissingSubject)
	assert.Nil(t, record)
}

func TestUserRecord_ApplyClaim(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	base := func() *UserRecord {
		return &UserRecord{
			ID:            uuid.New(),
			SubjectID:     "subject-123",
			Email:         "old@example.com",
			DisplayName:   "Old Name",
			EmailVerified: true,
			PictureURL:    "https://example.com/old.png",
			ProviderID:    "google.com",
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		}
	}

	t.Run("full claim refreshes mutable fields", func(t *testing.T) {
		record := base()
		record.ApplyClaim(&IdentityClaim{
			SubjectID:     "subject-123",
			Email:         "new@example.com",
			EmailVerified: false,
			DisplayName:   "New Name",
			PictureURL:    "https://example.com/new.png",
			ProviderID:    "password",
		})

		assert.Equal(t, "new@example.com", record.Email)
		assert.False(t, record.EmailVerified)
		assert.Equal(t, "New Name", record.DisplayName)
		assert.Equal(t, "https://example.com/new.png", record.PictureURL)
		assert.Equal(t, "password", record.ProviderID)
	})

	t.Run("partial claim preserves stored fields", func(t *testing.T) {
		record := base()
		record.ApplyClaim(&IdentityClaim{
			SubjectID:  "subject-123",
			ProviderID: ProviderUnknown,
		})

		assert.Equal(t, "old@example.com", record.Email)
		assert.True(t, record.EmailVerified)
		assert.Equal(t, "Old Name", record.DisplayName)
		assert.Equal(t, "https://example.com/old.png", record.PictureURL)
		assert.Equal(t, "google.com", record.ProviderID)
	})

	t.Run("immutable fields never change", func(t *testing.T) {
		record := base()
		originalID := record.ID
		record.ApplyClaim(&IdentityClaim{
			SubjectID: "subject-123",
			Email:     "new@example.com",
		})

		assert.Equal(t, originalID, record.ID)
		assert.Equal(t, "subject-123", record.SubjectID)
		assert.Equal(t, createdAt, record.CreatedAt)
		assert.True(t, record.UpdatedAt.After(createdAt))
	})

	t.Run("updated_at bumps even when nothing changed", func(t *testing.T) {
		record := base()
		record.ApplyClaim(&IdentityClaim{SubjectID: "subject-123"})

		assert.True(t, record.UpdatedAt.After(createdAt))
	})
}

func TestUserRecord_SetDisplayName(t *testing.T) {
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	record := &UserRecord{
		SubjectID:   "subject-123",
		DisplayName: "Old Name",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	record.SetDisplayName("New Name")

	assert.Equal(t, "New Name", record.DisplayName)
	assert.True(t, record.UpdatedAt.After(createdAt))
}

func TestUserRecord_AccountAgeDays(t *testing.T) {
	record := &UserRecord{
		CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 0, record.AccountAgeDays(time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, 10, record.AccountAgeDays(time.Date(2025, 1, 11, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 364, record.AccountAgeDays(time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)))
}
