package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/storelogin/internal/common"
	"github.com/dmitrijs2005/storelogin/internal/server/models"
	"github.com/dmitrijs2005/storelogin/internal/userspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {

	return wrapperspb.String(userspb.PingOK), nil

}

func (s *GRPCServer) CreateUser(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	in, err := userspb.UserFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	created, err := s.users.Create(ctx, &models.User{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "id", created.ID)

	// The password is not echoed back.
	return toWire(created, false).ToStruct(), nil

}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {

	list, err := s.users.List(ctx)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	values := make([]*structpb.Value, 0, len(list))
	for _, u := range list {
		values = append(values, structpb.NewStructValue(toWire(u, false).ToStruct()))
	}
	return &structpb.ListValue{Values: values}, nil

}

// GetUser returns the full record for an email, password included; the
// client compares it against what the user typed.
func (s *GRPCServer) GetUser(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {

	u, err := s.users.GetByEmail(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return toWire(u, true).ToStruct(), nil

}

func toWire(u *models.User, withPassword bool) userspb.User {
	w := userspb.User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if withPassword {
		w.Password = u.Password
	}
	return w
}

func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
