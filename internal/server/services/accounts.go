// Package services contains server-side business logic. This file implements
// AccountService, the account directory: registration, authentication with
// failed-attempt lockout, and password reset.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophlock/internal/common"
	"github.com/dmitrijs2005/gophlock/internal/logging"
	"github.com/dmitrijs2005/gophlock/internal/server/config"
	"github.com/dmitrijs2005/gophlock/internal/server/metrics"
	"github.com/dmitrijs2005/gophlock/internal/server/models"
	"github.com/dmitrijs2005/gophlock/internal/server/repositories/accounts"
)

// PasswordHasher derives and checks stored credential hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// AccountService owns the lockout state machine:
//
//	unlocked --wrong password, counter < max--> unlocked (counter+1)
//	unlocked --wrong password, counter == max--> locked
//	unlocked --right password--> unlocked (counter 0)
//	locked   --any password--> locked (no attempt consumed)
//	any      --reset--> unlocked (counter 0, new hash)
//
// Every method returns the public models.Account view; the hash never
// leaves the repository.
type AccountService struct {
	repo      accounts.Repository
	hasher    PasswordHasher
	threshold int
	logger    logging.Logger
	metrics   *metrics.Metrics
}

// NewAccountService wires the directory. m may be nil.
func NewAccountService(repo accounts.Repository, hasher PasswordHasher, cfg *config.Config, l logging.Logger, m *metrics.Metrics) *AccountService {
	threshold := cfg.LockoutThreshold
	if threshold < 1 {
		threshold = common.DefaultLockoutThreshold
	}
	return &AccountService{
		repo:      repo,
		hasher:    hasher,
		threshold: threshold,
		logger:    l.With("module", "accounts"),
		metrics:   m,
	}
}

// LockoutThreshold returns the number of failures that locks an account.
func (s *AccountService) LockoutThreshold() int {
	return s.threshold
}

// Register creates an account for email. Returns common.ErrDuplicateAccount
// if the email is already registered; the existing account is untouched.
func (s *AccountService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.Account, error) {
	// cheap check first so a duplicate does not pay for a hash
	if _, err := s.repo.Get(ctx, email); err == nil {
		s.metrics.RecordRegistration(metrics.ResultDuplicate)
		return nil, common.ErrDuplicateAccount
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.metrics.RecordRegistration(metrics.ResultInternalFail)
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	rec, err := s.repo.Create(ctx, &models.AccountRecord{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			s.metrics.RecordRegistration(metrics.ResultDuplicate)
			return nil, err
		}
		s.metrics.RecordRegistration(metrics.ResultInternalFail)
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.metrics.RecordRegistration(metrics.ResultSuccess)
	s.logger.Info(ctx, "Account registered", "id", rec.ID, "email", email)

	return rec.View(), nil
}

// Authenticate checks password for email.
//
// Errors:
//   - common.ErrAccountNotFound: no such account.
//   - common.ErrAccountLocked: the account was already locked; the password
//     is not looked at and no attempt is consumed.
//   - common.ErrAccountLockedNow: this failure reached the threshold.
//   - *common.InvalidCredentialsError: wrong password, attempt N of max.
//
// State changes are kept whatever the outcome.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	rec, err := s.repo.Update(ctx, email, func(rec *models.AccountRecord) error {
		if rec.Locked {
			return common.ErrAccountLocked
		}

		ok, err := s.hasher.Verify(password, rec.PasswordHash)
		if err != nil {
			return fmt.Errorf("error verifying password: %w", err)
		}

		if ok {
			rec.RecordSuccess()
			return nil
		}

		if rec.RecordFailure(s.threshold) {
			return common.ErrAccountLockedNow
		}
		return &common.InvalidCredentialsError{Attempt: rec.FailedAttempts, Max: s.threshold}
	})

	switch {
	case err == nil:
		s.metrics.RecordAuthentication(metrics.ResultSuccess)
		s.logger.Debug(ctx, "Authenticated", "email", email)
		return rec.View(), nil

	case errors.Is(err, common.ErrAccountNotFound):
		s.metrics.RecordAuthentication(metrics.ResultNotFound)
		return nil, err

	case errors.Is(err, common.ErrAccountLocked):
		s.metrics.RecordAuthentication(metrics.ResultLocked)
		return nil, err

	case errors.Is(err, common.ErrAccountLockedNow):
		s.metrics.RecordAuthentication(metrics.ResultLockedNow)
		s.logger.Warn(ctx, "Account locked", "email", email, "failed_attempts", rec.FailedAttempts)
		return nil, err

	case errors.Is(err, common.ErrInvalidCredentials):
		s.metrics.RecordAuthentication(metrics.ResultInvalid)
		s.logger.Info(ctx, "Invalid credentials", "email", email, "failed_attempts", rec.FailedAttempts)
		return nil, err

	default:
		s.metrics.RecordAuthentication(metrics.ResultInternalFail)
		s.logger.Error(ctx, "Authentication failed", "email", email, "error", err.Error())
		return nil, common.ErrorInternal
	}
}

// ResetPassword replaces the password for email and unlocks the account.
// No proof of the old password is required.
func (s *AccountService) ResetPassword(ctx context.Context, email, newPassword string) (*models.Account, error) {
	if _, err := s.repo.Get(ctx, email); err != nil {
		if errors.Is(err, common.ErrAccountNotFound) {
			s.metrics.RecordPasswordReset(metrics.ResultNotFound)
			return nil, err
		}
		s.metrics.RecordPasswordReset(metrics.ResultInternalFail)
		return nil, fmt.Errorf("error loading account: %w", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.metrics.RecordPasswordReset(metrics.ResultInternalFail)
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	rec, err := s.repo.Update(ctx, email, func(rec *models.AccountRecord) error {
		rec.ResetCredentials(hash)
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrAccountNotFound) {
			s.metrics.RecordPasswordReset(metrics.ResultNotFound)
			return nil, err
		}
		s.metrics.RecordPasswordReset(metrics.ResultInternalFail)
		return nil, fmt.Errorf("error updating account: %w", err)
	}

	s.metrics.RecordPasswordReset(metrics.ResultSuccess)
	s.logger.Info(ctx, "Password reset", "email", email)

	return rec.View(), nil
}

// GetFailedAttempts returns the current failure counter, 0 for unknown
// emails.
func (s *AccountService) GetFailedAttempts(ctx context.Context, email string) int {
	rec, err := s.repo.Get(ctx, email)
	if err != nil {
		return 0
	}
	return rec.FailedAttempts
}

// IsLocked reports the lock flag, false for unknown emails.
func (s *AccountService) IsLocked(ctx context.Context, email string) bool {
	rec, err := s.repo.Get(ctx, email)
	if err != nil {
		return false
	}
	return rec.Locked
}
