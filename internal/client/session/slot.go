// Package session holds the process-wide session slot: the single place the
// authenticated identity is published to after a successful login, for
// downstream screens to read.
//
// The slot holds at most one identity. It is written by the login flow only
// on success and cleared only by logout; nothing else writes it.
package session

import (
	"context"
	"errors"
)

var (
	ErrEmptyIdentity  = errors.New("empty identity")
	ErrUnknownBackend = errors.New("unknown session backend")
)

// Writer is the narrow contract the login flow depends on.
type Writer interface {
	Set(ctx context.Context, identity string) error
}

// Slot is the full session slot used by the screens around the login flow.
// Get reports ok=false when no identity is stored.
type Slot interface {
	Writer
	Get(ctx context.Context) (identity string, ok bool, err error)
	Clear(ctx context.Context) error
}
