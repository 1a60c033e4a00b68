package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storelogin/internal/client/models"
	"github.com/dmitrijs2005/storelogin/internal/userspb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      userspb.UsersServiceClient
}

// timeoutInterceptor bounds calls whose context carries no deadline with the
// client's default timeout. Calls that already have a deadline are left alone.
func (s *GRPCClient) timeoutInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, ok := ctx.Deadline(); !ok && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewUsersClientService(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.timeoutInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = userspb.NewUsersServiceClient(conn)
	return nil
}

// GetRecord fetches the record keyed by identifier. A response without an
// email or password field is reported as ErrMalformedResponse.
func (s *GRPCClient) GetRecord(ctx context.Context, identifier string) (*models.Record, error) {
	resp, err := s.client.GetUser(ctx, wrapperspb.String(identifier))
	if err != nil {
		return nil, s.mapError(err)
	}

	if !userspb.HasField(resp, userspb.FieldEmail) || !userspb.HasField(resp, userspb.FieldPassword) {
		return nil, ErrMalformedResponse
	}
	u, err := userspb.UserFromStruct(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &models.Record{Identifier: u.Email, Secret: []byte(u.Password)}, nil
}

func (s *GRPCClient) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	req := userspb.User{
		Email:     user.Email,
		Password:  string(user.Password),
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}.ToStruct()

	resp, err := s.client.CreateUser(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	u, err := userspb.UserFromStruct(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &models.User{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetValue() != userspb.PingOK {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return ErrInvalidInput
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
