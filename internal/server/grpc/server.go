package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/storelogin/internal/logging"
	"github.com/dmitrijs2005/storelogin/internal/server/models"
	"github.com/dmitrijs2005/storelogin/internal/userspb"
	"google.golang.org/grpc"
)

// userSvc is the part of services.UserService the handlers use.
type userSvc interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

type GRPCServer struct {
	userspb.UnimplementedUsersServiceServer
	address         string
	users           userSvc
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, us userSvc, shutdownTimeout time.Duration) (*GRPCServer, error) {
	if us == nil {
		return nil, errors.New("grpc server: nil user service")
	}
	return &GRPCServer{
		address:         a,
		logger:          l.With("module", "grpc_server"),
		users:           us,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves the users service on lis until ctx is done, then stops
// gracefully. If the graceful stop outlasts the shutdown timeout the
// remaining connections are closed.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.loggingInterceptor))

	userspb.RegisterUsersServiceServer(srv, s)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.stop(srv)
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}

func (s *GRPCServer) stop(srv *grpc.Server) {
	if s.shutdownTimeout <= 0 {
		srv.GracefulStop()
		return
	}

	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn(context.Background(), "graceful stop timed out, forcing")
		srv.Stop()
	}
}
