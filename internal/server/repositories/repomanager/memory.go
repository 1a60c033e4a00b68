package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/storelogin/internal/dbx"
	"github.com/dmitrijs2005/storelogin/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves one shared in-memory store regardless of
// the connection it is handed; there is nothing to migrate.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
