package users

import (
	"context"

	"github.com/dmitrijs2005/storelogin/internal/server/models"
)

// Repository stores user records keyed by email.
//
// Create returns common.ErrorAlreadyExists when the email is taken and
// GetByEmail returns common.ErrorNotFound when no record matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
