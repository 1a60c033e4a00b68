// Package services contains the users service business logic. UserService
// creates accounts and serves record lookups by email.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storelogin/internal/common"
	"github.com/dmitrijs2005/storelogin/internal/server/models"
	"github.com/dmitrijs2005/storelogin/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService provides the record store operations:
// - Create: register a user under a fresh id
// - GetByEmail: fetch the record for one email
// - List: all records
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	newID       func() string
}

// NewUserService constructs a UserService on top of the repository manager.
// db may be nil for managers that do not use a connection.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		newID:       uuid.NewString,
	}
}

// Create stores a new user. Email and password are required; the email is
// trimmed of surrounding whitespace but otherwise kept as given. A taken
// email yields common.ErrorAlreadyExists.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	email := strings.TrimSpace(user.Email)
	if email == "" || user.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	u := &models.User{
		ID:        s.newID(),
		Email:     email,
		Password:  user.Password,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	repo := s.repomanager.Users(s.db)
	created, err := repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// GetByEmail returns the record stored under email, or common.ErrorNotFound.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	list, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}
