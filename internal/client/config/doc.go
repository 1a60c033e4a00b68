// Package config loads runtime configuration for the storelogin client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the users service
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-s string   session backend: memory, sqlite or redis
//	-d string   SQLite DSN
//	-r string   Redis address
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds. Every key is optional:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "session_backend": "redis",
//	  "sqlite_dsn": "file:.storelogin/session.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_prefix": "storelogin",
//	  "redis_ttl": "30m",
//	  "log_level": "debug"
//	}
//
// Environment variables are not read.
package config
