package main

// The consumer drains reservation events from RabbitMQ and appends one
// line per event to EVENT_LOG_PATH.

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/logging"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
)

func main() {
	config.LoadDotenv()
	log := logging.New(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	path := os.Getenv("EVENT_LOG_PATH")
	if path == "" {
		path = "logs/reservations.log"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := queue.NewConsumer(config.AMQPURL(), path, log)
	log.Info().Str("queue", queue.ReservationQueue).Str("path", path).Msg("consumer started")
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("consumer stopped")
	}
	log.Info().Msg("consumer stopped")
}
