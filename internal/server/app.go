// Package server initializes and runs the backend: it opens the
// database, wires the services, and serves the REST API until a
// shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/scanfact/scanfact/internal/logging"
	"github.com/scanfact/scanfact/internal/server/config"
	"github.com/scanfact/scanfact/internal/server/httpapi"
	"github.com/scanfact/scanfact/internal/server/services"
	"github.com/scanfact/scanfact/internal/server/storage"
)

// Bootstrap credentials for an empty database; change them immediately
// after the first login.
const (
	defaultAdminEmail    = "admin@scanfact.local"
	defaultAdminPassword = "admin-change-me"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	zlog    zerolog.Logger
	manager storage.RepositoryManager
	router  http.Handler
}

func NewApp(c *config.Config) (*App, error) {

	zlog := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger := logging.NewZerologLogger(zlog)

	m, err := storage.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	authService := services.NewAuthService(m.Users(), c)
	if err := authService.EnsureAdmin(context.Background(), defaultAdminEmail, defaultAdminPassword); err != nil {
		return nil, err
	}

	foldersService := services.NewFoldersService(m.Folders(), m.Clients())
	ocr := services.NewOCRClient(c.OCREndpoint, c.OCRTimeout)

	router := httpapi.NewRouter(&httpapi.Services{
		Auth:     authService,
		Clients:  services.NewClientsService(m.Clients(), m.Users()),
		Folders:  foldersService,
		Invoices: services.NewInvoicesService(m.Invoices(), foldersService, ocr),
		Users:    services.NewUsersService(m.Users()),
	}, zlog)

	return &App{config: c, logger: logger, zlog: zlog, manager: m, router: router}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.EndpointAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}

	return app.manager.Close()
}
