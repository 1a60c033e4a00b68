package client

import (
	"context"

	"github.com/dmitrijs2005/storelogin/internal/client/models"
)

// Client is the record store as seen by the login screen.
//
// GetRecord is idempotent and read-only. It returns ErrNotFound when no
// record exists for the identifier; any other error means the lookup itself
// could not complete.
type Client interface {
	GetRecord(ctx context.Context, identifier string) (*models.Record, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	Ping(ctx context.Context) error
	Close() error
}
