// Package api declares the gophlock.AccountService gRPC contract: request
// and response messages, the service descriptor and a typed client. Messages
// travel as JSON through the codec registered in codec.go.
package api

import "time"

// Account is the wire form of an account. It never carries the hash.
type Account struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	FailedAttempts int       `json:"failed_attempts"`
	Locked         bool      `json:"locked"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type RegisterResponse struct {
	Account *Account `json:"account"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Account *Account `json:"account"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ResetPasswordResponse struct {
	Account *Account `json:"account"`
}

type AccountStatusRequest struct {
	Email string `json:"email"`
}

type AccountStatusResponse struct {
	FailedAttempts int  `json:"failed_attempts"`
	MaxAttempts    int  `json:"max_attempts"`
	Locked         bool `json:"locked"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
