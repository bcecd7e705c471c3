package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bountyhq/platform-api/internal/api"
	"github.com/bountyhq/platform-api/internal/infrastructure/config"
	mongodb "github.com/bountyhq/platform-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bountyhq/platform-api/internal/infrastructure/db/redis"
	"github.com/bountyhq/platform-api/internal/infrastructure/queue"
	"github.com/bountyhq/platform-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	dispatcher := queue.NewAuditDispatcher(
		cfg.Audit.Workers,
		cfg.Audit.Buffer,
		mongodb.NewAuditRepository(db),
		log,
	)
	dispatcher.Start()

	e := api.NewRouter(db, rdb, dispatcher, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Drain pending audit entries within the configured grace period.
	if err := dispatcher.Close(cfg.Audit.ShutdownGrace); err != nil {
		log.Warn().Err(err).Msg("audit dispatcher drain incomplete")
	}
}
