package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storelogin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storelogin/internal/common"
	"github.com/dmitrijs2005/storelogin/internal/dbx"
)

const loggedInAtKey = "logged_in_at"

// MetadataSlot persists the identity in the client SQLite metadata table,
// so it survives a restart of the CLI.
type MetadataSlot struct {
	db  *sql.DB
	now func() time.Time
}

func NewMetadataSlot(db *sql.DB) *MetadataSlot {
	return &MetadataSlot{db: db, now: time.Now}
}

// Set stores the identity together with the login time in one transaction.
func (s *MetadataSlot) Set(ctx context.Context, identity string) error {
	if identity == "" {
		return ErrEmptyIdentity
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionIdentityKey, []byte(identity)); err != nil {
			return err
		}
		return repo.Set(ctx, loggedInAtKey, []byte(s.now().UTC().Format(time.RFC3339)))
	})
}

func (s *MetadataSlot) Get(ctx context.Context) (string, bool, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.SessionIdentityKey)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

// LoggedInAt returns when the stored identity was written.
func (s *MetadataSlot) LoggedInAt(ctx context.Context) (time.Time, bool, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, loggedInAtKey)
	if err != nil || v == nil {
		return time.Time{}, false, err
	}
	ts, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse %s: %w", loggedInAtKey, err)
	}
	return ts, true, nil
}

func (s *MetadataSlot) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.SessionIdentityKey); err != nil {
			return err
		}
		return repo.Delete(ctx, loggedInAtKey)
	})
}
