// Package accounts stores account records keyed by email.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophlock/internal/server/models"
)

// UpdateFunc mutates rec in place. Changes made to rec are kept even when
// the function returns an error.
type UpdateFunc func(rec *models.AccountRecord) error

type Repository interface {
	// Create stores a new record, assigning ID and timestamps. Returns
	// common.ErrDuplicateAccount if the email is already taken.
	Create(ctx context.Context, rec *models.AccountRecord) (*models.AccountRecord, error)

	// Get returns a copy of the record for email, or common.ErrAccountNotFound.
	Get(ctx context.Context, email string) (*models.AccountRecord, error)

	// Update runs fn with exclusive access to the record for email and
	// returns a copy of the result along with fn's error. Calls for the same
	// email are serialized; calls for different emails are not.
	Update(ctx context.Context, email string, fn UpdateFunc) (*models.AccountRecord, error)
}
