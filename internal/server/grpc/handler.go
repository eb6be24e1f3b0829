package grpc

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/gophlock/internal/api"
	"github.com/dmitrijs2005/gophlock/internal/common"
	"github.com/dmitrijs2005/gophlock/internal/server/models"
	"github.com/dmitrijs2005/gophlock/internal/validate"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toAPIAccount(a *models.Account) *api.Account {
	if a == nil {
		return nil
	}
	return &api.Account{
		ID:             a.ID,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		Email:          a.Email,
		FailedAttempts: a.FailedAttempts,
		Locked:         a.Locked,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// statusCode maps directory errors to gRPC codes.
func statusCode(err error) codes.Code {
	switch {
	case errors.Is(err, common.ErrDuplicateAccount):
		return codes.AlreadyExists
	case errors.Is(err, common.ErrAccountNotFound):
		return codes.NotFound
	case errors.Is(err, common.ErrInvalidCredentials):
		return codes.Unauthenticated
	case errors.Is(err, common.ErrAccountLocked), errors.Is(err, common.ErrAccountLockedNow):
		return codes.PermissionDenied
	case common.IsValidationError(err):
		return codes.InvalidArgument
	default:
		return codes.Internal
	}
}

func (s *GRPCServer) toStatusError(ctx context.Context, err error) error {
	code := statusCode(err)
	if code == codes.Internal {
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}

// loginError attaches the account's lockout state to a failed login.
func (s *GRPCServer) loginError(ctx context.Context, email string, err error) error {
	var reason string
	switch {
	case errors.Is(err, common.ErrAccountLockedNow):
		reason = common.ReasonAccountLockedNow
	case errors.Is(err, common.ErrAccountLocked):
		reason = common.ReasonAccountLocked
	case errors.Is(err, common.ErrInvalidCredentials):
		reason = common.ReasonInvalidCredentials
	default:
		return s.toStatusError(ctx, err)
	}

	failed := s.accounts.GetFailedAttempts(ctx, email)
	var ice *common.InvalidCredentialsError
	if errors.As(err, &ice) {
		failed = ice.Attempt
	}

	st := status.New(statusCode(err), err.Error())
	withInfo, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: common.ErrorDomain,
		Metadata: map[string]string{
			common.MetaFailedAttempts: strconv.Itoa(failed),
			common.MetaMaxAttempts:    strconv.Itoa(s.accounts.LockoutThreshold()),
			common.MetaAccountLocked:  strconv.FormatBool(s.accounts.IsLocked(ctx, email)),
		},
	})
	if derr != nil {
		return st.Err()
	}
	return withInfo.Err()
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	if err := validate.Registration(req.FirstName, req.LastName, req.Email, req.Password, req.ConfirmPassword); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	acc, err := s.accounts.Register(ctx, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatusError(ctx, err)
	}

	return &api.RegisterResponse{Account: toAPIAccount(acc)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	if err := validate.Login(req.Email, req.Password); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	acc, err := s.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.loginError(ctx, req.Email, err)
	}

	return &api.LoginResponse{Account: toAPIAccount(acc)}, nil
}

func (s *GRPCServer) ResetPassword(ctx context.Context, req *api.ResetPasswordRequest) (*api.ResetPasswordResponse, error) {

	if err := validate.Reset(req.Email, req.NewPassword, req.ConfirmPassword); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	acc, err := s.accounts.ResetPassword(ctx, req.Email, req.NewPassword)
	if err != nil {
		return nil, s.toStatusError(ctx, err)
	}

	return &api.ResetPasswordResponse{Account: toAPIAccount(acc)}, nil
}

func (s *GRPCServer) GetAccountStatus(ctx context.Context, req *api.AccountStatusRequest) (*api.AccountStatusResponse, error) {

	return &api.AccountStatusResponse{
		FailedAttempts: s.accounts.GetFailedAttempts(ctx, req.Email),
		MaxAttempts:    s.accounts.LockoutThreshold(),
		Locked:         s.accounts.IsLocked(ctx, req.Email),
	}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil
}
