package validate

import (
	"testing"

	"github.com/dmitrijs2005/gophlock/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"ascii", "Anna", true},
		{"polish letters", "Łukasz", true},
		{"exactly three", "Ola", true},
		{"too short", "Al", false},
		{"digit", "Ann4", false},
		{"space", "Anna Maria", false},
		{"hyphen", "Anna-Maria", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.in))
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"anna@example.com", true},
		{"a.b+tag_x-y@host", true},
		{"anna.example.com", false},
		{"@example.com", false},
		{"anna@", false},
		{"an na@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.in))
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Secret#123", true},
		{"Abcdef1!", true},
		{"Abcde1!", false},    // too short
		{"secret#123", false}, // no uppercase
		{"Secret#abc", false}, // no digit
		{"Secret1234", false}, // no special
		{"Secret?123", false}, // special outside the set
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Password(tt.in))
		})
	}
}

func TestRegistration(t *testing.T) {
	tests := []struct {
		name                            string
		first, last, email, pw, confirm string
		want                            error
	}{
		{"valid", "Anna", "Nowak", "anna@example.com", "Secret#123", "Secret#123", nil},
		{"bad first name", "An", "Nowak", "anna@example.com", "Secret#123", "Secret#123", common.ErrInvalidFirstName},
		{"bad last name", "Anna", "N0wak", "anna@example.com", "Secret#123", "Secret#123", common.ErrInvalidLastName},
		{"bad email", "Anna", "Nowak", "anna", "Secret#123", "Secret#123", common.ErrInvalidEmail},
		{"weak password", "Anna", "Nowak", "anna@example.com", "secret", "secret", common.ErrWeakPassword},
		{"mismatch", "Anna", "Nowak", "anna@example.com", "Secret#123", "Secret#124", common.ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Registration(tt.first, tt.last, tt.email, tt.pw, tt.confirm)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	assert.NoError(t, Login("anna@example.com", "whatever"))
	assert.ErrorIs(t, Login("anna", "whatever"), common.ErrInvalidEmail)
	assert.ErrorIs(t, Login("anna@example.com", ""), common.ErrWeakPassword)
}

func TestReset(t *testing.T) {
	assert.NoError(t, Reset("anna@example.com", "Fresh#456", "Fresh#456"))
	assert.ErrorIs(t, Reset("anna", "Fresh#456", "Fresh#456"), common.ErrInvalidEmail)
	assert.ErrorIs(t, Reset("anna@example.com", "fresh", "fresh"), common.ErrWeakPassword)
	assert.ErrorIs(t, Reset("anna@example.com", "Fresh#456", "Fresh#457"), common.ErrPasswordMismatch)
}
