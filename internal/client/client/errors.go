package client

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophlock/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrInvalidArgument = errors.New("invalid argument")
)

// LoginFailure describes a rejected login. It unwraps to the common error
// that caused it (ErrInvalidCredentials, ErrAccountLocked or
// ErrAccountLockedNow).
type LoginFailure struct {
	Err            error
	FailedAttempts int
	MaxAttempts    int
	Locked         bool
}

func (e *LoginFailure) Error() string {
	if e.Locked {
		return fmt.Sprintf("%s (%d of %d failed attempts)", e.Err, e.FailedAttempts, e.MaxAttempts)
	}
	return fmt.Sprintf("%s, attempt %d of %d", e.Err, e.FailedAttempts, e.MaxAttempts)
}

func (e *LoginFailure) Unwrap() error {
	return e.Err
}

func errorInfo(st *status.Status) *errdetails.ErrorInfo {
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == common.ErrorDomain {
			return info
		}
	}
	return nil
}

// loginFailure builds a LoginFailure from the ErrorInfo attached to st, or
// returns nil if there is none.
func loginFailure(st *status.Status) *LoginFailure {
	info := errorInfo(st)
	if info == nil {
		return nil
	}

	md := info.GetMetadata()
	failed, _ := strconv.Atoi(md[common.MetaFailedAttempts])
	maxAttempts, _ := strconv.Atoi(md[common.MetaMaxAttempts])
	locked, _ := strconv.ParseBool(md[common.MetaAccountLocked])

	var cause error
	switch info.GetReason() {
	case common.ReasonAccountLockedNow:
		cause = common.ErrAccountLockedNow
	case common.ReasonAccountLocked:
		cause = common.ErrAccountLocked
	default:
		cause = common.ErrInvalidCredentials
	}

	return &LoginFailure{Err: cause, FailedAttempts: failed, MaxAttempts: maxAttempts, Locked: locked}
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.AlreadyExists:
		return common.ErrDuplicateAccount
	case codes.NotFound:
		return common.ErrAccountNotFound
	case codes.Unauthenticated, codes.PermissionDenied:
		if lf := loginFailure(st); lf != nil {
			return lf
		}
		if st.Code() == codes.PermissionDenied {
			return common.ErrAccountLocked
		}
		return common.ErrInvalidCredentials
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
