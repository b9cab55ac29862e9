// Package app arma el proceso: config -> logger -> base de datos -> migración -> router -> servidor.
// No hay estado global: todo cuelga de *App y se libera con Close.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"medication-log/internal/adapters/storage/gormstore"
	"medication-log/internal/platform/config"
	"medication-log/internal/platform/logger"
	"medication-log/internal/platform/metrics"
	"medication-log/internal/router"

	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg config.Config
	log logger.Logger
	db  *gorm.DB
	srv *http.Server
}

// New abre la base, aplica la migración y prepara el servidor HTTP.
// Si algo falla, libera lo que ya se abrió.
func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, err := gormstore.Open(ctx, gormstore.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Info("database connected", map[string]any{"driver": cfg.DBDriver})

	if err := gormstore.Migrate(ctx, db); err != nil {
		_ = gormstore.Close(db)
		return nil, err
	}
	log.Info("schema ready", nil)

	return &App{
		cfg: cfg,
		log: log,
		db:  db,
		srv: newServer(cfg.Addr(), router.NewRouter(router.Options{
			DB:      db,
			Logger:  log,
			Metrics: metrics.New(),
		})),
	}, nil
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

func (a *App) Handler() http.Handler {
	return a.srv.Handler
}

// Run sirve hasta que ctx se cancela y luego hace shutdown ordenado.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("starting server", map[string]any{"addr": a.srv.Addr})
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Close libera el pool de la base.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := gormstore.Close(a.db)
	a.db = nil
	return err
}
