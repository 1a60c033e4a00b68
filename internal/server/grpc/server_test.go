package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/storelogin/internal/logging"
	"github.com/dmitrijs2005/storelogin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storelogin/internal/server/services"
	"github.com/dmitrijs2005/storelogin/internal/userspb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

func TestNewGRPCServer_NilService(t *testing.T) {
	_, err := NewGRPCServer(":0", nopLogger{}, nil, 0)
	require.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:0", nopLogger{}, &fakeUsers{}, time.Second)
	if err != nil {
		t.Fatalf("NewGRPCServer error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv, err := NewGRPCServer("127.0.0.1:99999", nopLogger{}, &fakeUsers{}, 0)
	if err != nil {
		t.Fatalf("NewGRPCServer error (constructor should not fail here): %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// startBufconn serves a GRPCServer backed by the in-memory store and
// returns a client connected to it.
func startBufconn(t *testing.T) userspb.UsersServiceClient {
	t.Helper()

	us := services.NewUserService(nil, repomanager.NewInMemoryRepositoryManager())
	srv, err := NewGRPCServer("bufconn", nopLogger{}, us, time.Second)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return userspb.NewUsersServiceClient(conn)
}

func TestServe_EndToEnd(t *testing.T) {
	c := startBufconn(t)
	ctx := context.Background()

	pong, err := c.Ping(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, userspb.PingOK, pong.GetValue())

	created, err := c.CreateUser(ctx, userspb.User{
		Email: "a@b.com", Password: "pw1", FirstName: "Ann",
	}.ToStruct())
	require.NoError(t, err)
	assert.False(t, userspb.HasField(created, userspb.FieldPassword))
	assert.True(t, userspb.HasField(created, userspb.FieldID))

	_, err = c.CreateUser(ctx, userspb.User{Email: "a@b.com", Password: "x"}.ToStruct())
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = c.CreateUser(ctx, userspb.User{Email: "c@d.com"}.ToStruct())
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	got, err := c.GetUser(ctx, wrapperspb.String("a@b.com"))
	require.NoError(t, err)
	u, err := userspb.UserFromStruct(got)
	require.NoError(t, err)
	assert.Equal(t, "pw1", u.Password)
	assert.Equal(t, "Ann", u.FirstName)

	_, err = c.GetUser(ctx, wrapperspb.String("nobody@x.com"))
	assert.Equal(t, codes.NotFound, status.Code(err))

	list, err := c.ListUsers(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, list.GetValues(), 1)
	first := list.GetValues()[0].GetStructValue()
	assert.Equal(t, "a@b.com", first.GetFields()[userspb.FieldEmail].GetStringValue())
	assert.False(t, userspb.HasField(first, userspb.FieldPassword), "list never carries passwords")
}

func TestServe_CreateUserRejectsNonStringField(t *testing.T) {
	c := startBufconn(t)

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		userspb.FieldEmail: structpb.NewNumberValue(1),
	}}
	_, err := c.CreateUser(context.Background(), req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
