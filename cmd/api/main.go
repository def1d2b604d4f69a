package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/barcrafted/bar-system/internal/api"
	"github.com/barcrafted/bar-system/internal/infrastructure/config"
	mongodb "github.com/barcrafted/bar-system/internal/infrastructure/db/mongo"
	redisdb "github.com/barcrafted/bar-system/internal/infrastructure/db/redis"
	"github.com/barcrafted/bar-system/internal/infrastructure/delivery"
	"github.com/barcrafted/bar-system/internal/infrastructure/mail"
	"github.com/barcrafted/bar-system/internal/infrastructure/notify"
	"github.com/barcrafted/bar-system/pkg/logger"
)

// @title        Bar System API
// @version      1.0
// @description  Authentication, authorization and credential lifecycle for the bar system.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})

	cfg := config.Load(log)
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting bar system API")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Out-of-band delivery ---
	mailer := mail.NewLogMailer(cfg.Delivery.MailBaseURL, log)
	notifier := notify.NewWebhookNotifier(cfg.Delivery.ChatWebhookURL, log)
	dispatcher := delivery.NewDispatcher(cfg.Delivery.Workers, mailer, notifier, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e, err := api.NewRouter(cfg, db, rdb, dispatcher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router construction failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
