package firebase

import (
	"context"

	"identity-service/app/domain"
	"identity-service/app/port"
)

// Adapter adapts the Firebase SDK client to port.TokenVerifier, translating
// SDK types into domain types so nothing above the driver imports the SDK.
type Adapter struct {
	client *Client
}

// NewAdapter creates a new adapter around a Firebase client
func NewAdapter(client *Client) port.TokenVerifier {
	return &Adapter{client: client}
}

// VerifyIDToken verifies a token and maps the SDK result into the domain
func (a *Adapter) VerifyIDToken(ctx context.Context, idToken string) (*domain.FirebaseToken, error) {
	token, err := a.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	return &domain.FirebaseToken{
		UID:            token.UID,
		SignInProvider: token.Firebase.SignInProvider,
		Claims:         token.Claims,
	}, nil
}
