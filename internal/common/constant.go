package common

// DefaultLockoutThreshold is the number of consecutive failed
// authentications that locks an account.
const DefaultLockoutThreshold = 3

// ErrorDomain is the google.rpc.ErrorInfo domain attached to gRPC errors.
const ErrorDomain = "gophlock"

// ErrorInfo metadata keys carrying lockout context on login failures.
const (
	MetaFailedAttempts = "failed_attempts"
	MetaMaxAttempts    = "max_attempts"
	MetaAccountLocked  = "account_locked"
)

// ErrorInfo reasons.
const (
	ReasonInvalidCredentials = "INVALID_CREDENTIALS"
	ReasonAccountLocked      = "ACCOUNT_LOCKED"
	ReasonAccountLockedNow   = "ACCOUNT_LOCKED_NOW"
)
