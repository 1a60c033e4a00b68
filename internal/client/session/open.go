package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storelogin/internal/client/client"
	"github.com/dmitrijs2005/storelogin/internal/filex"
	"github.com/redis/go-redis/v9"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a slot backend.
type Options struct {
	Backend     string
	SQLiteDSN   string
	RedisAddr   string
	RedisPrefix string
	RedisTTL    time.Duration
}

// Open builds the slot named by opts.Backend. The returned close function
// releases the backend's resources and is never nil.
func Open(ctx context.Context, opts Options) (Slot, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case BackendMemory, "":
		return NewMemorySlot(), noop, nil

	case BackendSQLite:
		if path := filex.SQLitePath(opts.SQLiteDSN); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, noop, fmt.Errorf("session sqlite dir: %w", err)
			}
		}
		db, err := client.InitDatabase(ctx, opts.SQLiteDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("session sqlite init: %w", err)
		}
		return NewMetadataSlot(db), db.Close, nil

	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, fmt.Errorf("session redis ping: %w", err)
		}
		return NewRedisSlot(rdb, opts.RedisPrefix, opts.RedisTTL), rdb.Close, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
