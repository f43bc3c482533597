package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"All Four Classes", "SecurePass12!", false},
		{"Three Classes No Special", "SecurePass123", false},
		{"Three Classes No Upper", "securepass12!", false},
		{"Exactly Min Length", "Abcdefg1", false},
		{"Too Short", "Small1!", true},
		{"Too Long", "A" + strings.Repeat("b", 126) + "1!", true},
		{"Lowercase Only", "justlowercase", true},
		{"Lower And Digits Only", "lowercase123", true},
		{"Digits And Special Only", "1234567890!@", true},
		{"Unicode Characters", "ÅngstromPass12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "alice@example.com", false},
		{"Valid With Plus", "alice+swap@example.co.uk", false},
		{"Missing At", "alice.example.com", true},
		{"Missing Domain", "alice@", true},
		{"Missing TLD", "alice@example", true},
		{"Empty", "", true},
		{"Spaces", "alice @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateName("Alice"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName(strings.Repeat("a", 101)))
}
