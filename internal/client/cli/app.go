package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/cinemaclient/internal/client/client"
	"github.com/dmitrijs2005/cinemaclient/internal/client/config"
	"github.com/dmitrijs2005/cinemaclient/internal/client/credentials"
	"github.com/dmitrijs2005/cinemaclient/internal/client/graphql"
	"github.com/dmitrijs2005/cinemaclient/internal/client/services"
	"github.com/dmitrijs2005/cinemaclient/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	authService    services.AuthService
	catalogService services.CatalogService
	adminService   services.AdminService
	reader         *bufio.Reader
	out            io.Writer

	browsers map[string]browser
	current  browser

	mu       sync.Mutex
	mode     Mode
	userName string
	admin    bool

	closeOnce sync.Once
	closeErr  error
}

// NewApp opens the state database and builds the services. Gateway metrics
// are registered on reg when it is not nil.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, reg prometheus.Registerer) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	locale, err := language.Parse(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}

	db, err := client.InitDatabase(ctx, c.StateDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := credentials.NewStore(db)

	opts := []graphql.Option{graphql.WithLogger(logger), graphql.WithTimeout(c.RequestTimeout)}
	if reg != nil {
		opts = append(opts, graphql.WithMetrics(graphql.NewMetrics(reg)))
	}
	gw := graphql.NewClient(c.GraphQLEndpoint, store, opts...)

	cs := services.NewCatalogService(gw, store, logger)

	a := &App{
		config:         c,
		logger:         logger,
		db:             db,
		authService:    services.NewAuthService(gw, store, logger),
		catalogService: cs,
		adminService:   services.NewAdminService(gw, store, logger),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		browsers:       newBrowsers(cs, c.PageSize, locale),
	}
	return a, nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setUser(name string, admin bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
	a.admin = admin
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userName != ""
}

func (a *App) isAdmin() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.admin
}

// Run restores a remembered session, starts the status watcher and blocks
// in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	cred, err := a.authService.Restore(ctx)
	if err != nil {
		a.logger.Warn(ctx, "restoring session failed", "error", err)
	}
	if cred.Valid() {
		a.setUser(cred.User.DisplayName(), cred.IsAdmin())
		fmt.Fprintf(a.out, "Welcome back, %s\n", cred.User.DisplayName())
	}

	a.Root(ctx)
}

// Close releases the state database. Run closes it on return; callers
// that stop waiting for Run, e.g. on interrupt, close it themselves.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		if a.db != nil {
			a.closeErr = a.db.Close()
		}
	})
	return a.closeErr
}

// StartOnlineStatusWatcher pings the gateway every interval and switches
// between online and offline mode. It returns when ctx is done.
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
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
