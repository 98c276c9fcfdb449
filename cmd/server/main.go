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

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iliyamo/author-service/internal/config"
	"github.com/iliyamo/author-service/internal/database"
	"github.com/iliyamo/author-service/internal/handler"
	"github.com/iliyamo/author-service/internal/logger"
	"github.com/iliyamo/author-service/internal/middleware"
	"github.com/iliyamo/author-service/internal/repository"
	"github.com/iliyamo/author-service/internal/router"
	"github.com/iliyamo/author-service/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.ServiceName, cfg.IsDevelopment())

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// nil when redis is down; cache and rate limit then pass through
	rdb := config.NewRedisClient(cfg.Redis, log)
	if rdb != nil {
		defer rdb.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(
		middleware.Recover(log),
		middleware.RequestLogger(log),
		metrics.Middleware(),
		middleware.NewTokenBucket(cfg.RateLimit, rdb, log, metrics),
	)

	authors := handler.NewAuthorHandler(cfg, repository.NewAuthorRepo(db),
		service.NewPublisher(cfg.AMQP.URL), log)
	router.RegisterRoutes(e, db, reg)
	router.RegisterAuthors(e, authors, cfg.JWT.Secret, middleware.NewRedisCache(cfg.Cache, rdb, log))

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("db", cfg.DB.Driver).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return e.Shutdown(shutdownCtx)
}
