package domain

// ProviderUnknown is recorded when the identity provider does not report
// which sign-in method produced the token.
const ProviderUnknown = "unknown"

// FirebaseToken is the decoded, already-verified output of the identity
// provider as it crosses the driver boundary. It is not a claim yet; the
// gateway normalizes it into an IdentityClaim.
type FirebaseToken struct {
	UID            string
	SignInProvider string
	Claims         map[string]interface{}
}

// IdentityClaim is the normalized identity derived from a verified
// credential. A claim only exists as the output of successful verification.
type IdentityClaim struct {
	SubjectID     string `json:"uid"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified"`
	DisplayName   string `json:"display_name,omitempty"`
	PictureURL    string `json:"picture,omitempty"`
	ProviderID    string `json:"provider_id"`
}

// NewIdentityClaim builds a claim from a verified provider token.
// The subject is required; a token without one is treated as invalid.
func NewIdentityClaim(token *FirebaseToken) (*IdentityClaim, error) {
	if token == nil || token.UID == "" {
		return nil, ErrMissingSubject
	}

	claim := &IdentityClaim{
		SubjectID:  token.UID,
		ProviderID: ProviderUnknown,
	}

	if token.SignInProvider != "" {
		claim.ProviderID = token.SignInProvider
	}

	if email, ok := token.Claims["email"].(string); ok {
		claim.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		claim.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		claim.DisplayName = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		claim.PictureURL = picture
	}

	return claim, nil
}
