// Package cli is the interactive terminal front end. It binds the
// session gate, the entity stores and the REST adapter into a REPL; all
// collection logic stays in the store and domain packages.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scanfact/scanfact/internal/client/api"
	"github.com/scanfact/scanfact/internal/client/config"
	"github.com/scanfact/scanfact/internal/client/credentials"
	"github.com/scanfact/scanfact/internal/client/domain"
	"github.com/scanfact/scanfact/internal/client/session"
	"github.com/scanfact/scanfact/internal/logging"
)

type App struct {
	config *config.Config
	db     *sql.DB
	api    *api.Client
	gate   *session.Gate
	stores *domain.Stores
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	db, err := credentials.OpenDatabase(ctx, cfg.CredentialDB)
	if err != nil {
		return nil, err
	}

	app := &App{
		config: cfg,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		log:    logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
	}

	// The adapter pulls the token from the gate per request, and the gate
	// is forced to log out when any authenticated call comes back 401/403.
	app.api = api.New(cfg.ServerURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithTokenFunc(func() string { return app.gate.Token() }),
		api.WithAuthFailureHook(func() { app.onAuthFailure() }),
	)
	app.gate = session.NewGate(app.api, db)

	return app, nil
}

func (a *App) onAuthFailure() {
	a.gate.ForceLogout()
	a.stores = nil
	fmt.Fprintln(a.out, "Session expired, please log in again.")
}

func (a *App) isLoggedIn() bool {
	_, ok := a.gate.Current()
	return ok
}

// ensureStores builds the store set for the current identity on first
// use after a login or restore.
func (a *App) ensureStores() *domain.Stores {
	id, ok := a.gate.Current()
	if !ok {
		return nil
	}
	if a.stores == nil {
		a.stores = domain.NewStores(a.api, id.Role)
	}
	return a.stores
}

func (a *App) status() string {
	if id, ok := a.gate.Current(); ok {
		return fmt.Sprintf("%s %s", id.Email, id.Role)
	}
	return "anonymous"
}

func (a *App) Run(ctx context.Context) {
	if id, ok, err := a.gate.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	} else if ok {
		fmt.Fprintf(a.out, "Welcome back, %s\n", id.Email)
	}

	fmt.Fprintln(a.out, "scanfact CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))

	_ = a.db.Close()
}
