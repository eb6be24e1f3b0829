package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophlock/internal/api"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// AccountStatus is the lockout state of an account as seen by the server.
type AccountStatus struct {
	FailedAttempts int
	MaxAttempts    int
	Locked         bool
}

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.AccountServiceClient
}

func NewAccountClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient connects lazily; the first call dials. Extra options are
// appended to the insecure transport default.
func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewAccountServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Register(ctx context.Context, firstName, lastName, email string, password, confirm []byte) (*api.Account, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &api.RegisterRequest{
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	}

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Account, nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*api.Account, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: string(password)})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Account, nil
}

func (s *GRPCClient) ResetPassword(ctx context.Context, email string, password, confirm []byte) (*api.Account, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	req := &api.ResetPasswordRequest{
		Email:           email,
		NewPassword:     string(password),
		ConfirmPassword: string(confirm),
	}

	resp, err := s.client.ResetPassword(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Account, nil
}

func (s *GRPCClient) Status(ctx context.Context, email string) (*AccountStatus, error) {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetAccountStatus(ctx, &api.AccountStatusRequest{Email: email})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &AccountStatus{FailedAttempts: resp.FailedAttempts, MaxAttempts: resp.MaxAttempts, Locked: resp.Locked}, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.Ping(ctx, &api.PingRequest{})
	return s.mapError(err)
}
