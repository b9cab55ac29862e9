// @title       medication-log
// @version     1.0
// @description List and add medication entries.
// @BasePath    /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"medication-log/internal/app"
	"medication-log/internal/platform/config"
	"medication-log/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// todavía no hay config: logger desde env
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Error("server error", map[string]any{"err": err})
		_ = a.Close()
		os.Exit(1)
	}
}
