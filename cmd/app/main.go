package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"

	"github.com/labstack/echo/v4"
	gommonlog "github.com/labstack/gommon/log"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func setupLogger(cfg cmd.Config) {
	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("fulfillment service stopped with an error")
	}
	log.Info("fulfillment service stopped")
}

func run(ctx context.Context, cfg cmd.Config) error {
	logger := log.WithField("service", "fulfillment")

	db, err := cmd.OpenDatabase(cfg, logger)
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(cfg, db, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("failed to close notification transport")
		}
	}()

	e := echo.New()
	e.Logger.SetLevel(gommonlog.OFF)
	if err = app.CreateHTTPServer().Register(ctx, e); err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	serveErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
		logger.WithField("addr", addr).Info("http server listening")
		serveErr <- e.Start(addr)
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
