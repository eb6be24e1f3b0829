// Package cli implements the interactive gophlock command line client.
//
// Commands:
//
//	register   create an account
//	login      check credentials; shows remaining attempts on failure
//	reset      set a new password and unlock the account
//	status     show failed attempts and lock state for an email
//	ping       check that the server answers
//	help, exit
//
// Form fields are validated locally with package validate before anything
// is sent. Passwords are read without echo and wiped after use.
package cli
