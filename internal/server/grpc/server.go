package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophlock/internal/api"
	"github.com/dmitrijs2005/gophlock/internal/logging"
	"github.com/dmitrijs2005/gophlock/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AccountDirectory is the part of services.AccountService the transport
// needs.
type AccountDirectory interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
	ResetPassword(ctx context.Context, email, newPassword string) (*models.Account, error)
	GetFailedAttempts(ctx context.Context, email string) int
	IsLocked(ctx context.Context, email string) bool
	LockoutThreshold() int
}

type GRPCServer struct {
	api.UnimplementedAccountServiceServer
	address  string
	accounts AccountDirectory
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, accounts AccountDirectory) (*GRPCServer, error) {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		accounts: accounts,
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	return s.serve(ctx, listen)
}

// serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	api.RegisterAccountServiceServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
