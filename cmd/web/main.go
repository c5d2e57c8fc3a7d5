// Command web serves the JSON API over the Last.fm web service. Settings come
// from LASTFM_* environment variables and the optional file named by
// LASTFM_CONFIG; see pkg/config for the keys.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"LastFM-Go/pkg/config"
	"LastFM-Go/pkg/db"
	"LastFM-Go/pkg/handlers"
	"LastFM-Go/pkg/logging"
)

const shutdownTimeout = 5 * time.Second

var errMissingSigningKey = errors.New("signing_key must be set")

func main() {
	cfg, err := config.Load(os.Getenv("LASTFM_CONFIG"))
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
	logger.Info("server exited")
}

// run opens the database and serves until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.SigningKey == "" {
		return errMissingSigningKey
	}

	database, err := db.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer database.Close()

	srv := newServer(cfg, newApplication(cfg, logger, database))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newApplication(cfg *config.Config, logger *logrus.Logger, database *db.DB) *handlers.Application {
	return &handlers.Application{
		Client:    cfg.Client(logger),
		DB:        database,
		SignKey:   []byte(cfg.SigningKey),
		Log:       logger,
		RateLimit: cfg.RateLimit,
	}
}

// newServer bounds every phase of a request. The write timeout leaves room
// for an upstream call that runs to the client timeout.
func newServer(cfg *config.Config, app *handlers.Application) *http.Server {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           app.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
