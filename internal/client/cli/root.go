package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	parts := make([]string, 0, 3)
	if a.userName != "" {
		parts = append(parts, a.userName)
	}
	if a.admin {
		parts = append(parts, "admin")
	}
	if a.mode != "" {
		parts = append(parts, string(a.mode))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the REPL on stdin with the online status watcher in the
// background. It returns when the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to the cinema CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	// Commands prompt through a.reader too, so the loop must not read
	// ahead of the current line.
	runREPL(ctx, a, a.getStatus, a.reader)
}
