package models

import "time"

// AccountRecord is the stored state of one account, credential hash
// included. It never leaves the server; use View for anything returned to
// callers.
type AccountRecord struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	FailedAttempts int
	Locked         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Account is the public view of an account. It has no credential field.
type Account struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string
	FailedAttempts int
	Locked         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// View returns the public representation of r.
func (r *AccountRecord) View() *Account {
	return &Account{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		FailedAttempts: r.FailedAttempts,
		Locked:         r.Locked,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// RecordFailure counts one failed authentication and locks the account once
// the counter reaches threshold. It reports whether this call locked it.
func (r *AccountRecord) RecordFailure(threshold int) (lockedNow bool) {
	r.FailedAttempts++
	if r.FailedAttempts >= threshold {
		r.Locked = true
		return true
	}
	return false
}

// RecordSuccess clears the failure counter after a successful login.
func (r *AccountRecord) RecordSuccess() {
	r.FailedAttempts = 0
}

// ResetCredentials installs a new hash and lifts any lockout.
func (r *AccountRecord) ResetCredentials(hash string) {
	r.PasswordHash = hash
	r.FailedAttempts = 0
	r.Locked = false
}
