package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/storelogin/internal/flagx"
)

var knownFlags = []string{"-a", "-i", "-t", "-s", "-d", "-r", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the users service
//	-i int      online check interval in seconds
//	-t int      request timeout in seconds
//	-s string   session backend: memory, sqlite or redis
//	-d string   SQLite DSN for the sqlite session backend
//	-r string   Redis address for the redis session backend
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// components (such as -c) are ignored here.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionBackend, "s", cfg.SessionBackend, "session backend (memory, sqlite, redis)")
	fs.StringVar(&cfg.SQLiteDSN, "d", cfg.SQLiteDSN, "SQLite DSN for the sqlite session backend")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address for the redis session backend")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
