package gateway

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"identity-service/app/domain"
	mock_port "identity-service/app/mocks"
	"identity-service/app/utils/logger"
)

func TestIdentityGateway_VerifyToken(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*mock_port.MockTokenVerifier)
		expectErr  bool
		check      func(*testing.T, *domain.IdentityClaim)
	}{
		{
			name: "valid token normalized into claim",
			setupMocks: func(verifier *mock_port.MockTokenVerifier) {
				verifier.EXPECT().VerifyIDToken(gomock.Any(), "valid-token").Return(&domain.FirebaseToken{
					UID:            "subject-123",
					SignInProvider: "google.com",
					Claims: map[string]interface{}{
						"email":          "user@example.com",
						"email_verified": true,
						"name":           "Test User",
					},
				}, nil)
			},
			check: func(t *testing.T, claim *domain.IdentityClaim) {
				assert.Equal(t, "subject-123", claim.SubjectID)
				assert.Equal(t, "user@example.com", claim.Email)
				assert.True(t, claim.EmailVerified)
				assert.Equal(t, "Test User", claim.DisplayName)
				assert.Equal(t, "google.com", claim.ProviderID)
			},
		},
		{
			name: "missing sign-in provider falls back to unknown",
			setupMocks: func(verifier *mock_port.MockTokenVerifier) {
				verifier.EXPECT().VerifyIDToken(gomock.Any(), "valid-token").Return(&domain.FirebaseToken{
					UID: "subject-123",
				}, nil)
			},
			check: func(t *testing.T, claim *domain.IdentityClaim) {
				assert.Equal(t, domain.ProviderUnknown, claim.ProviderID)
			},
		},
		{
			name: "verifier failure propagates",
			setupMocks: func(verifier *mock_port.MockTokenVerifier) {
				verifier.EXPECT().VerifyIDToken(gomock.Any(), "valid-token").
					Return(nil, fmt.Errorf("token has expired"))
			},
			expectErr: true,
		},
		{
			name: "verified token without subject rejected",
			setupMocks: func(verifier *mock_port.MockTokenVerifier) {
				verifier.EXPECT().VerifyIDToken(gomock.Any(), "valid-token").Return(&domain.FirebaseToken{
					Claims: map[string]interface{}{"email": "user@example.com"},
				}, nil)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockVerifier := mock_port.NewMockTokenVerifier(ctrl)
			tt.setupMocks(mockVerifier)

			log, err := logger.New("error")
			assert.NoError(t, err)

			gw := NewIdentityGateway(mockVerifier, log)

			claim, err := gw.VerifyToken(context.Background(), "valid-token")

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, claim)
				return
			}

			assert.NoError(t, err)
			if tt.check != nil {
				tt.check(t, claim)
			}
		})
	}
}
