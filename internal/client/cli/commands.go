package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophlock/internal/client/client"
	"github.com/dmitrijs2005/gophlock/internal/common"
	"github.com/dmitrijs2005/gophlock/internal/validate"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// describe turns an error into a line for the user.
func describe(err error) string {
	var lf *client.LoginFailure
	switch {
	case errors.As(err, &lf) && errors.Is(err, common.ErrAccountLockedNow):
		return fmt.Sprintf("invalid credentials, attempt %d of %d. Account is now locked, reset your password to unlock it",
			lf.FailedAttempts, lf.MaxAttempts)
	case errors.As(err, &lf) && errors.Is(err, common.ErrAccountLocked):
		return "account is locked, reset your password to unlock it"
	case errors.As(err, &lf):
		return fmt.Sprintf("invalid credentials, attempt %d of %d", lf.FailedAttempts, lf.MaxAttempts)
	case errors.Is(err, common.ErrDuplicateAccount):
		return "an account with this email already exists"
	case errors.Is(err, common.ErrAccountNotFound):
		return "no account with this email"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	default:
		return err.Error()
	}
}

// readNewPassword asks for a password twice and checks it locally. Both
// slices are returned for the caller to wipe.
func (a *App) readNewPassword() ([]byte, []byte, error) {
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return nil, nil, err
	}
	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		common.WipeByteArray(password)
		return nil, nil, err
	}
	if err := validate.NewPassword(string(password), string(confirm)); err != nil {
		common.WipeByteArray(password)
		common.WipeByteArray(confirm)
		return nil, nil, err
	}
	return password, confirm, nil
}

// Register prompts for the registration form and creates the account.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}
	if !validate.Name(firstName) {
		return common.ErrInvalidFirstName
	}

	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}
	if !validate.Name(lastName) {
		return common.ErrInvalidLastName
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if !validate.Email(email) {
		return common.ErrInvalidEmail
	}

	password, confirm, err := a.readNewPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	defer common.WipeByteArray(confirm)

	acc, err := a.api.Register(ctx, firstName, lastName, email, password, confirm)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Registered %s %s <%s>", acc.FirstName, acc.LastName, acc.Email))
	return nil
}

// Login prompts for credentials and checks them. A failure reports how many
// attempts are left or that the account is locked.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if !validate.Email(email) {
		return common.ErrInvalidEmail
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acc, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.email = acc.Email
	printlnFn(fmt.Sprintf("Welcome, %s %s!", acc.FirstName, acc.LastName))
	return nil
}

// Reset prompts for an email and a new password.
func (a *App) Reset(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if !validate.Email(email) {
		return common.ErrInvalidEmail
	}

	password, confirm, err := a.readNewPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	defer common.WipeByteArray(confirm)

	if _, err := a.api.ResetPassword(ctx, email, password, confirm); err != nil {
		return err
	}

	printlnFn("Password changed, account unlocked")
	return nil
}

// Status shows the lockout state for an email.
func (a *App) Status(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	st, err := a.api.Status(ctx, email)
	if err != nil {
		return err
	}

	state := "unlocked"
	if st.Locked {
		state = "locked"
	}
	printlnFn(fmt.Sprintf("%s: %s, %d of %d failed attempts", email, state, st.FailedAttempts, st.MaxAttempts))
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		return err
	}
	printlnFn("OK")
	return nil
}
