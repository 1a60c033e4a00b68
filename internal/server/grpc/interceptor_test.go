package grpc

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/storelogin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) add(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg, args: args})
}

func (r *recordingLogger) Debug(_ context.Context, msg string, args ...any) { r.add("debug", msg, args) }
func (r *recordingLogger) Info(_ context.Context, msg string, args ...any)  { r.add("info", msg, args) }
func (r *recordingLogger) Warn(_ context.Context, msg string, args ...any)  { r.add("warn", msg, args) }
func (r *recordingLogger) Error(_ context.Context, msg string, args ...any) { r.add("error", msg, args) }
func (r *recordingLogger) With(...any) logging.Logger                       { return r }

func TestLoggingInterceptor_LevelFollowsCode(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"ok", nil, "info"},
		{"not found", status.Error(codes.NotFound, "x"), "info"},
		{"internal", status.Error(codes.Internal, "x"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := &recordingLogger{}
			s := &GRPCServer{logger: rl}
			info := &grpc.UnaryServerInfo{FullMethod: "/svc/M"}

			_, err := s.loggingInterceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
				return "ok", tt.err
			})
			require.Equal(t, tt.err, err)

			require.Len(t, rl.entries, 1)
			assert.Equal(t, tt.level, rl.entries[0].level)
			assert.Contains(t, rl.entries[0].args, "/svc/M")
		})
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	rl := &recordingLogger{}
	s := &GRPCServer{logger: rl}
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Boom"}

	resp, err := s.recoveryInterceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		panic("kaboom")
	})

	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
	require.Len(t, rl.entries, 1)
	assert.Equal(t, "error", rl.entries[0].level)
}

func TestRecoveryInterceptor_PassesThrough(t *testing.T) {
	s := &GRPCServer{logger: nopLogger{}}
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/M"}

	resp, err := s.recoveryInterceptor(context.Background(), "req", info, func(_ context.Context, req interface{}) (interface{}, error) {
		return req, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "req", resp)
}
