package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/influconnect/marketplace-api/internal/api"
	mongoinfra "github.com/influconnect/marketplace-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/influconnect/marketplace-api/internal/infrastructure/db/redis"
	"github.com/influconnect/marketplace-api/internal/infrastructure/storage"
	"github.com/influconnect/marketplace-api/internal/pkg/config"
	"github.com/influconnect/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongoinfra.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// Redis only backs contact-query dedup; run degraded without it.
	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, query dedup disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	avatars, err := storage.NewAvatarStore(cfg.UploadDir, "/uploads/avatars")
	if err != nil {
		log.Fatal().Err(err).Msg("avatar storage init failed")
	}

	e := api.NewRouter(api.Deps{
		Client:      client,
		DB:          db,
		Redis:       rdb,
		Avatars:     avatars,
		JWTSecret:   cfg.JWTSecret,
		JWTTTL:      cfg.JWTTTL,
		DedupWindow: cfg.Redis.DedupWindow,
		Log:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting marketplace api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
