package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRecord is the durable local representation of an authenticated user,
// keyed by the identity provider's subject id. Exactly one record exists per
// subject id; the users table enforces this with a unique constraint.
type UserRecord struct {
	ID            uuid.UUID `json:"id"`
	SubjectID     string    `json:"uid"`
	Email         string    `json:"email,omitempty"`
	DisplayName   string    `json:"display_name,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	PictureURL    string    `json:"picture,omitempty"`
	ProviderID    string    `json:"provider_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewUserRecord creates a fresh record for a first-time subject.
// CreatedAt and UpdatedAt start equal.
func NewUserRecord(claim *IdentityClaim) (*UserRecord, error) {
	if claim == nil || claim.SubjectID == "" {
		return nil, ErrMissingSubject
	}

	now := time.Now().UTC()

	return &UserRecord{
		ID:            uuid.New(),
		SubjectID:     claim.SubjectID,
		Email:         claim.Email,
		DisplayName:   claim.DisplayName,
		EmailVerified: claim.EmailVerified,
		PictureURL:    claim.PictureURL,
		ProviderID:    claim.ProviderID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ApplyClaim refreshes mutable fields from the latest claim and bumps
// UpdatedAt. Fields the claim does not carry keep their stored value, so a
// partial claim never erases prior data. SubjectID and CreatedAt are
// immutable.
func (u *UserRecord) ApplyClaim(claim *IdentityClaim) {
	if claim.Email != "" {
		u.Email = claim.Email
		u.EmailVerified = claim.EmailVerified
	}
	if claim.DisplayName != "" {
		u.DisplayName = claim.DisplayName
	}
	if claim.PictureURL != "" {
		u.PictureURL = claim.PictureURL
	}
	if claim.ProviderID != "" && claim.ProviderID != ProviderUnknown {
		u.ProviderID = claim.ProviderID
	}
	u.UpdatedAt = time.Now().UTC()
}

// SetDisplayName updates the display name from a profile edit.
func (u *UserRecord) SetDisplayName(name string) {
	u.DisplayName = name
	u.UpdatedAt = time.Now().UTC()
}

// AccountAgeDays returns the whole number of days since the record was
// created.
func (u *UserRecord) AccountAgeDays(now time.Time) int {
	return int(now.Sub(u.CreatedAt).Hours() / 24)
}
