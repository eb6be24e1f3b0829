// Package validate checks account form fields before they reach the
// account directory. Both the gRPC server and the CLI client use it.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophlock/internal/common"
)

const (
	MinNameLength     = 3
	MinPasswordLength = 8

	passwordSpecials = "!@#$%^&*"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-ZĄ-ż]+$`)
	emailRe = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
)

// Name checks a first or last name: letters only, at least MinNameLength.
func Name(name string) bool {
	return utf8.RuneCountInString(name) >= MinNameLength && nameRe.MatchString(name)
}

// Email checks the rough shape local@domain.
func Email(email string) bool {
	return emailRe.MatchString(email)
}

// Password requires MinPasswordLength characters including an uppercase
// letter, a digit and one of !@#$%^&*.
func Password(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}

	var upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}

	return upper && digit && special
}

// Registration validates a registration form and returns the first
// offending field's error.
func Registration(firstName, lastName, email, password, confirm string) error {
	if !Name(firstName) {
		return common.ErrInvalidFirstName
	}
	if !Name(lastName) {
		return common.ErrInvalidLastName
	}
	if !Email(email) {
		return common.ErrInvalidEmail
	}
	return NewPassword(password, confirm)
}

// Login validates a login form. The password only has to be present: its
// strength rules are enforced when it is set, not when it is tried.
func Login(email, password string) error {
	if !Email(email) {
		return common.ErrInvalidEmail
	}
	if password == "" {
		return common.ErrWeakPassword
	}
	return nil
}

// Reset validates a password reset form.
func Reset(email, password, confirm string) error {
	if !Email(email) {
		return common.ErrInvalidEmail
	}
	return NewPassword(password, confirm)
}

// NewPassword checks strength and confirmation of a password being set.
func NewPassword(password, confirm string) error {
	if !Password(password) {
		return common.ErrWeakPassword
	}
	if password != confirm {
		return common.ErrPasswordMismatch
	}
	return nil
}
