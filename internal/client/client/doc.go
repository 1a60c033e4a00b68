// Package client contains the client-side building blocks that talk to the
// users record service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): GetRecord,
//     CreateUser, Ping and Close.
//  2. A gRPC implementation (see GRPCClient) that manages the connection,
//     applies a default per-call timeout and maps gRPC status codes to
//     sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) opening the
//     client SQLite database and applying the embedded goose migrations.
//
// # Error Handling
//
// Conditions callers care about are exposed as sentinel errors matched with
// errors.Is: ErrNotFound, ErrUnavailable, ErrMalformedResponse,
// ErrAlreadyExists, ErrInvalidInput. Anything else is wrapped as "rpc error".
package client
