// Command worker consumes author.registered events and records the
// activation links in logs/activation.log.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/author-service/internal/config"
	"github.com/iliyamo/author-service/internal/logger"
	"github.com/iliyamo/author-service/internal/queue"
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

	cfg, err := config.LoadWorker()
	if err != nil {
		return err
	}
	log := logger.New(cfg.ServiceName+"-worker", cfg.Env == "development" || cfg.Env == "dev")

	log.Info().Str("queue", queue.AuthorRegisteredQueue).Msg("activation consumer starting")
	err = queue.NewConsumer(cfg.AMQP.URL, log).Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("activation consumer stopped")
		return nil
	}
	return err
}
