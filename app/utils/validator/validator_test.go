package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type loginPayload struct {
	IDToken string `json:"idToken" validate:"required"`
}

type profilePayload struct {
	DisplayName *string `json:"display_name" validate:"omitempty,notblank,max=10"`
}

func TestValidate_Required(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&loginPayload{IDToken: "some-token"}))

	err := v.Validate(&loginPayload{})
	assert.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "is required", validationErr.Errors["idToken"])
}

func TestValidate_NotBlank(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		value     *string
		expectErr bool
	}{
		{name: "nil pointer passes", value: nil},
		{name: "non-blank value passes", value: strPtr("Alice")},
		{name: "empty string fails", value: strPtr(""), expectErr: true},
		{name: "whitespace only fails", value: strPtr("   "), expectErr: true},
		{name: "too long fails", value: strPtr("a very long name"), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&profilePayload{DisplayName: tt.value})

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	v := New()

	err := v.Validate(&loginPayload{})
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "idToken")
}

func TestValidateVar(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateVar("user@example.com", "email"))
	assert.Error(t, v.ValidateVar("not-an-email", "email"))
	assert.Error(t, v.ValidateVar("  ", "notblank"))
}

func strPtr(s string) *string {
	return &s
}
