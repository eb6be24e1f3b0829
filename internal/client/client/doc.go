// Package client wraps the gophlock.AccountService gRPC API for the CLI.
// Transport failures are mapped back onto the sentinel errors of package
// common, and lockout details carried by a failed login are decoded into
// LoginFailure.
package client
