package config

import (
	"time"

	"github.com/dmitrijs2005/storelogin/internal/client/session"
)

// Config holds runtime settings for the storelogin client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the users record service.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: default deadline applied to each RPC that has none.
//   - SessionBackend: where the authenticated identity is kept
//     (memory, sqlite or redis).
//   - SQLiteDSN: client database used by the sqlite session backend.
//   - RedisAddr, RedisPrefix, RedisTTL: settings of the redis session backend.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	SessionBackend      string
	SQLiteDSN           string
	RedisAddr           string
	RedisPrefix         string
	RedisTTL            time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.SessionBackend = session.BackendMemory
	c.SQLiteDSN = "file:.storelogin/session.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "storelogin"
	c.RedisTTL = 0
	c.LogLevel = "info"
}

// SessionOptions projects the session related settings.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Backend:     c.SessionBackend,
		SQLiteDSN:   c.SQLiteDSN,
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
		RedisTTL:    c.RedisTTL,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
