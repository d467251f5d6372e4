package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/restate/internal/client/appwrite"
	"github.com/dmitrijs2005/restate/internal/client/authctx"
	"github.com/dmitrijs2005/restate/internal/client/browser"
	"github.com/dmitrijs2005/restate/internal/client/config"
	"github.com/dmitrijs2005/restate/internal/client/fetch"
	"github.com/dmitrijs2005/restate/internal/client/models"
	"github.com/dmitrijs2005/restate/internal/client/services"
	"github.com/dmitrijs2005/restate/internal/client/storage"
	"github.com/dmitrijs2005/restate/internal/logging"
	"golang.org/x/term"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	props       services.PropertyService
	provider    *authctx.Provider
	listings    *fetch.Hook[[]*models.Property]
	logger      logging.Logger

	in  io.Reader
	out io.Writer

	// interactive decides whether prompts are printed.
	interactive bool
	loggingIn   atomic.Bool
	closers     []io.Closer
}

// NewApp wires the application. Configuration problems are logged, not
// returned: the REPL still starts and backend calls fail when made.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		logger.Error(ctx, "appwrite client is not configured", "error", err)
	}

	repos, err := storage.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	client := appwrite.New(appwrite.Options{
		Endpoint: c.Endpoint,
		Project:  c.ProjectID,
		Timeout:  c.RequestTimeout,
		Cookies:  repos.Cookies,
	})
	if err := client.Restore(ctx); err != nil {
		logger.Warn(ctx, "could not restore saved session", "error", err)
	}

	as := services.NewAuthService(
		client,
		browser.NewLoopback(c.LoginTimeout, os.Stdout, logger),
		services.AuthConfig{Platform: c.Platform, CallbackAddr: c.CallbackAddr},
		logger,
	)
	ps := services.NewPropertyService(client, services.Collections{
		DatabaseID: c.DatabaseID,
		Properties: c.PropertiesCollectionID,
		Agents:     c.AgentsCollectionID,
	}, logger)

	a := newApp(as, ps, logger, os.Stdin, os.Stdout)
	a.config = c
	a.interactive = term.IsTerminal(int(os.Stdin.Fd()))
	a.closers = append(a.closers, repos)
	return a, nil
}

func newApp(as services.AuthService, ps services.PropertyService, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService: as,
		props:       ps,
		provider:    authctx.NewProvider(as.CurrentUser),
		listings:    fetch.New(services.PropertiesFetcher(ps), fetch.WithSkip()),
		logger:      logger,
		in:          in,
		out:         out,
	}
}

// Run checks for an existing session and runs the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	ctx = authctx.WithProvider(ctx, a.provider)
	a.provider.Load(ctx)

	if a.interactive {
		fmt.Fprintln(a.out, "Welcome to ReState CLI (type 'help' for commands)")
	}
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.in), a.interactive)
}

func (a *App) close(ctx context.Context) {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(ctx, "close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return authctx.FromContext(ctx).State().IsLogged
}

func (a *App) getStatus(ctx context.Context) string {
	st := authctx.FromContext(ctx).State()
	switch {
	case st.Loading:
		return "(...)"
	case st.User != nil:
		return fmt.Sprintf("(%s)", st.User.Name)
	}
	return ""
}
