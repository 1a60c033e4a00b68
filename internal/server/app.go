// Package server wires and runs the users record service: configuration,
// storage backend, schema migrations and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/storelogin/internal/logging"
	"github.com/dmitrijs2005/storelogin/internal/server/config"
	"github.com/dmitrijs2005/storelogin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/storelogin/internal/server/services"

	gs "github.com/dmitrijs2005/storelogin/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
}

// openPostgres is a seam for tests; it opens and pings the database.
var openPostgres = repomanager.OpenPostgres

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	switch c.Storage {
	case config.StorageMemory:
		rm = repomanager.NewInMemoryRepositoryManager()

	case config.StoragePostgres, "":
		var err error
		db, err = openPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		rm = repomanager.NewPostgresRepositoryManager()

	default:
		return nil, fmt.Errorf("unknown storage %q", c.Storage)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("migrations: %w", err)
	}

	us := services.NewUserService(db, rm)

	return &App{config: c, logger: logger, db: db, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context) error {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.config.ShutdownTimeout)
	if err != nil {
		return err
	}

	return s.Run(ctx)
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	err := app.startGRPCServer(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if app.db != nil {
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Error(ctx, "closing database", "error", cerr)
		}
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
