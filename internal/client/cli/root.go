package cli

import (
	"bufio"
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if id := a.identity(context.Background()); id != "" {
		s = id + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root is the client's main loop. It opens on the login screen unless the
// session slot already holds an identity, starts the online status watcher
// and then serves the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the store (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	if a.isLoggedIn() {
		a.navigate(ScreenInventory)
	} else if err := a.Login(ctx); err != nil {
		a.logger.Warn(ctx, "login screen", "error", err)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
