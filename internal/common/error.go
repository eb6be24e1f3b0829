// Package common defines shared constants and sentinel errors used across
// the client and server layers of gophlock. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Account directory errors.
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked, please reset your password")
	ErrAccountLockedNow   = errors.New("account locked after too many failed attempts, please reset your password")

	// Validation errors, reported before the directory is called.
	ErrInvalidFirstName = errors.New("first name must be at least 3 characters and contain only letters")
	ErrInvalidLastName  = errors.New("last name must be at least 3 characters and contain only letters")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrWeakPassword     = errors.New("password must be at least 8 characters with uppercase, digit, and special character")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// InvalidCredentialsError reports a failed authentication that did not lock
// the account. Attempt is the failed-attempt counter after this call and Max
// is the lockout threshold.
type InvalidCredentialsError struct {
	Attempt int
	Max     int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("%s, attempt %d of %d", ErrInvalidCredentials, e.Attempt, e.Max)
}

// Unwrap lets errors.Is(err, ErrInvalidCredentials) match.
func (e *InvalidCredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// IsValidationError reports whether err is one of the field-format errors.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidFirstName, ErrInvalidLastName, ErrInvalidEmail, ErrWeakPassword, ErrPasswordMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
