package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophlock/internal/api"
	"github.com/dmitrijs2005/gophlock/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

/*************
 * Fake api client
 *************/

type fakeAPI struct {
	lastRegisterReq *api.RegisterRequest
	lastLoginReq    *api.LoginRequest
	lastResetReq    *api.ResetPasswordRequest
	lastStatusReq   *api.AccountStatusRequest

	account *api.Account
	status  *api.AccountStatusResponse
	err     error

	deadlineSet bool
}

func (f *fakeAPI) seen(ctx context.Context) {
	_, f.deadlineSet = ctx.Deadline()
}

func (f *fakeAPI) Register(ctx context.Context, in *api.RegisterRequest, opts ...grpc.CallOption) (*api.RegisterResponse, error) {
	f.seen(ctx)
	f.lastRegisterReq = in
	if f.err != nil {
		return nil, f.err
	}
	return &api.RegisterResponse{Account: f.account}, nil
}
func (f *fakeAPI) Login(ctx context.Context, in *api.LoginRequest, opts ...grpc.CallOption) (*api.LoginResponse, error) {
	f.seen(ctx)
	f.lastLoginReq = in
	if f.err != nil {
		return nil, f.err
	}
	return &api.LoginResponse{Account: f.account}, nil
}
func (f *fakeAPI) ResetPassword(ctx context.Context, in *api.ResetPasswordRequest, opts ...grpc.CallOption) (*api.ResetPasswordResponse, error) {
	f.seen(ctx)
	f.lastResetReq = in
	if f.err != nil {
		return nil, f.err
	}
	return &api.ResetPasswordResponse{Account: f.account}, nil
}
func (f *fakeAPI) GetAccountStatus(ctx context.Context, in *api.AccountStatusRequest, opts ...grpc.CallOption) (*api.AccountStatusResponse, error) {
	f.seen(ctx)
	f.lastStatusReq = in
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}
func (f *fakeAPI) Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error) {
	f.seen(ctx)
	if f.err != nil {
		return nil, f.err
	}
	return &api.PingResponse{Status: "OK"}, nil
}

func loginStatus(t *testing.T, code codes.Code, reason string, failed, max, locked string) error {
	t.Helper()
	st, err := status.New(code, "login failed").WithDetails(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: common.ErrorDomain,
		Metadata: map[string]string{
			common.MetaFailedAttempts: failed,
			common.MetaMaxAttempts:    max,
			common.MetaAccountLocked:  locked,
		},
	})
	require.NoError(t, err)
	return st.Err()
}

/*************
 * Tests
 *************/

func TestRegister_SendsFieldsAndTimeout(t *testing.T) {
	f := &fakeAPI{account: &api.Account{ID: "id-1", Email: "anna@example.com"}}
	c := &GRPCClient{client: f, timeout: time.Second}

	acc, err := c.Register(context.Background(), "Anna", "Nowak", "anna@example.com", []byte("Secret#123"), []byte("Secret#123"))
	require.NoError(t, err)
	assert.Equal(t, "id-1", acc.ID)
	assert.Equal(t, &api.RegisterRequest{
		FirstName: "Anna", LastName: "Nowak", Email: "anna@example.com",
		Password: "Secret#123", ConfirmPassword: "Secret#123",
	}, f.lastRegisterReq)
	assert.True(t, f.deadlineSet)
}

func TestNoTimeout_NoDeadline(t *testing.T) {
	f := &fakeAPI{}
	c := &GRPCClient{client: f}

	require.NoError(t, c.Ping(context.Background()))
	assert.False(t, f.deadlineSet)
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		check  func(t *testing.T, lf *LoginFailure)
	}{
		{
			name:   "invalid credentials",
			err:    loginStatus(t, codes.Unauthenticated, common.ReasonInvalidCredentials, "2", "3", "false"),
			target: common.ErrInvalidCredentials,
			check: func(t *testing.T, lf *LoginFailure) {
				assert.Equal(t, 2, lf.FailedAttempts)
				assert.Equal(t, 3, lf.MaxAttempts)
				assert.False(t, lf.Locked)
				assert.Contains(t, lf.Error(), "attempt 2 of 3")
			},
		},
		{
			name:   "locked now",
			err:    loginStatus(t, codes.PermissionDenied, common.ReasonAccountLockedNow, "3", "3", "true"),
			target: common.ErrAccountLockedNow,
			check: func(t *testing.T, lf *LoginFailure) {
				assert.True(t, lf.Locked)
			},
		},
		{
			name:   "already locked",
			err:    loginStatus(t, codes.PermissionDenied, common.ReasonAccountLocked, "3", "3", "true"),
			target: common.ErrAccountLocked,
			check: func(t *testing.T, lf *LoginFailure) {
				assert.Contains(t, lf.Error(), "3 of 3 failed attempts")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &GRPCClient{client: &fakeAPI{err: tt.err}}

			_, err := c.Login(context.Background(), "anna@example.com", []byte("Wrong#123"))
			require.ErrorIs(t, err, tt.target)

			var lf *LoginFailure
			require.True(t, errors.As(err, &lf))
			tt.check(t, lf)
		})
	}
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		in     error
		target error
	}{
		{status.Error(codes.AlreadyExists, "dup"), common.ErrDuplicateAccount},
		{status.Error(codes.NotFound, "nf"), common.ErrAccountNotFound},
		{status.Error(codes.Unauthenticated, "no details"), common.ErrInvalidCredentials},
		{status.Error(codes.PermissionDenied, "no details"), common.ErrAccountLocked},
		{status.Error(codes.InvalidArgument, "weak password"), ErrInvalidArgument},
		{status.Error(codes.Unavailable, "down"), ErrUnavailable},
		{status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, c.mapError(tt.in), tt.target, "%v", tt.in)
	}

	assert.NoError(t, c.mapError(nil))

	internal := status.Error(codes.Internal, "internal error")
	assert.ErrorIs(t, c.mapError(internal), internal)
	assert.Contains(t, c.mapError(status.Error(codes.InvalidArgument, "weak password")).Error(), "weak password")
}

func TestStatusAndReset(t *testing.T) {
	f := &fakeAPI{
		status:  &api.AccountStatusResponse{FailedAttempts: 1, MaxAttempts: 3},
		account: &api.Account{Email: "anna@example.com"},
	}
	c := &GRPCClient{client: f}

	st, err := c.Status(context.Background(), "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, &AccountStatus{FailedAttempts: 1, MaxAttempts: 3}, st)
	assert.Equal(t, "anna@example.com", f.lastStatusReq.Email)

	_, err = c.ResetPassword(context.Background(), "anna@example.com", []byte("Fresh#456"), []byte("Fresh#456"))
	require.NoError(t, err)
	assert.Equal(t, "Fresh#456", f.lastResetReq.NewPassword)

	f.err = status.Error(codes.NotFound, "nf")
	_, err = c.ResetPassword(context.Background(), "ghost@example.com", []byte("Fresh#456"), []byte("Fresh#456"))
	assert.ErrorIs(t, err, common.ErrAccountNotFound)
}

/*************
 * Over the wire
 *************/

type pingServer struct {
	api.UnimplementedAccountServiceServer
}

func (pingServer) Ping(context.Context, *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func TestNewAccountClient_OverBufconn(t *testing.T) {
	lis := bufconn.Listen(1 << 16)
	srv := grpc.NewServer()
	api.RegisterAccountServiceServer(srv, pingServer{})
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	c, err := NewAccountClient("passthrough:///bufnet", time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Ping(context.Background()))

	_, err = c.Login(context.Background(), "anna@example.com", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc error")
}
