// Package server initializes and runs the card server: it opens the
// database, wires the card service and serves the HTTP API until the
// process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unbox-app/unbox/internal/logging"
	"github.com/unbox-app/unbox/internal/server/config"
	"github.com/unbox-app/unbox/internal/server/db"
	"github.com/unbox-app/unbox/internal/server/httpapi"
	"github.com/unbox-app/unbox/internal/server/repositories/cards"
	"github.com/unbox-app/unbox/internal/server/services"
	s3storage "github.com/unbox-app/unbox/internal/server/storage/s3"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	database, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var repo cards.Repository
	switch cfg.DatabaseDriver {
	case "pgx", "postgres":
		repo = cards.NewPostgresRepository(database)
	default:
		repo = cards.NewSQLiteRepository(database)
	}

	uploader := s3storage.NewUploader(s3storage.Config{
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		BaseEndpoint:  cfg.S3BaseEndpoint,
		Bucket:        cfg.S3Bucket,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})

	svc := services.NewCardService(repo, uploader, logger)

	api := httpapi.NewServer(svc, httpapi.Config{
		PublicBaseURL:     cfg.PublicBaseURL,
		JWTSecret:         []byte(cfg.SecretKey),
		AdminPasswordHash: cfg.AdminPasswordHash,
		TokenTTL:          cfg.TokenTTL,
	}, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     database,
		server: &http.Server{Addr: cfg.ListenAddr, Handler: api},
	}, nil
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting server", "addr", app.config.ListenAddr)

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server error", "error", err)
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
