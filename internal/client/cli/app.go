package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/storelogin/internal/client/client"
	"github.com/dmitrijs2005/storelogin/internal/client/config"
	"github.com/dmitrijs2005/storelogin/internal/client/session"
	"github.com/dmitrijs2005/storelogin/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Screen is the page the user is on. Login is the landing screen;
// Inventory is where a successful login leads.
type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenInventory Screen = "inventory"
)

type App struct {
	config    *config.Config
	client    client.Client
	slot      session.Slot
	closeSlot func() error
	logger    logging.Logger
	reader    *bufio.Reader

	mu     sync.RWMutex
	mode   Mode
	screen Screen
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	apiClient, err := client.NewUsersClientService(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("users client: %w", err)
	}

	slot, closeSlot, err := session.Open(ctx, c.SessionOptions())
	if err != nil {
		_ = apiClient.Close()
		return nil, err
	}

	return &App{
		config:    c,
		client:    apiClient,
		slot:      slot,
		closeSlot: closeSlot,
		logger:    logger.With("module", "cli"),
		reader:    bufio.NewReader(os.Stdin),
		screen:    ScreenLogin,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error(ctx, "shutdown", "error", err)
		}
	}()
	a.Root(ctx)
}

// Close releases the RPC connection and the session backend.
func (a *App) Close() error {
	var errs []error
	if a.client != nil {
		errs = append(errs, a.client.Close())
	}
	if a.closeSlot != nil {
		errs = append(errs, a.closeSlot())
	}
	return errors.Join(errs...)
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

func (a *App) Screen() Screen {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.screen
}

func (a *App) navigate(s Screen) {
	a.mu.Lock()
	a.screen = s
	a.mu.Unlock()
	printlnFn(fmt.Sprintf("-> /%s", s))
}

// identity is the identity currently held by the session slot, or "".
func (a *App) identity(ctx context.Context) string {
	id, ok, err := a.slot.Get(ctx)
	if err != nil {
		a.logger.Warn(ctx, "session slot read failed", "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return id
}

func (a *App) isLoggedIn() bool {
	return a.identity(context.Background()) != ""
}

// StartOnlineStatusWatcher pings the users service every interval and flips
// the mode between online and offline. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.client.Ping(pctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
