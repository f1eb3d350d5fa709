package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/database"
	"github.com/iliyamo/restaurant-reservation/internal/handler"
	"github.com/iliyamo/restaurant-reservation/internal/logging"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/router"
	"github.com/iliyamo/restaurant-reservation/internal/service"
)

func main() {
	config.LoadDotenv()
	cfg := config.Load()
	log := logging.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := database.Apply(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	users := repository.NewUserRepo(db)
	sessions := repository.NewSessionRepo(db)
	tables := repository.NewTableRepo(db)
	reservations := repository.NewReservationRepo(db)

	seeded, err := tables.SeedDefaults(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding tables failed")
	}
	if seeded {
		log.Info().Msg("seeded default tables")
	}

	// Redis only backs the rate limiter; without it requests are not limited.
	var rdb *redis.Client
	rl := config.LoadRateLimitConfig()
	if rl.Enabled {
		if rdb, err = config.NewRedisClient(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	publisher := queue.NewPublisher(cfg.AMQPURL, log)

	authSvc := service.NewAuthService(users, sessions, service.AuthConfig{
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		BcryptCost:    cfg.BcryptCost,
	})
	resSvc := service.NewReservationService(tables, reservations, publisher, service.ReservationOptions{
		Location:   cfg.Location,
		WindowDays: cfg.BookingWindowDays,
		Logger:     log,
	})

	e := router.New(router.Options{
		CORSOrigins: cfg.CORSOrigins,
		RateLimit:   rl,
		Redis:       rdb,
		Sessions:    authSvc,
		Log:         log,
	})
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc, cfg.CookieSecure, log))
	router.RegisterReservations(e,
		handler.NewTableHandler(resSvc, log),
		handler.NewReservationHandler(resSvc, log),
	)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
