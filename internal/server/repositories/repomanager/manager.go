package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/storelogin/internal/dbx"
	"github.com/dmitrijs2005/storelogin/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or transaction
// and prepares the schema they need.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
