package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ang3lito/rabiesresq/config"
	"github.com/Ang3lito/rabiesresq/internal/email"
	"github.com/Ang3lito/rabiesresq/internal/repository/postgres"
	"github.com/Ang3lito/rabiesresq/internal/worker"
	"github.com/Ang3lito/rabiesresq/pkg/logger"
	"github.com/Ang3lito/rabiesresq/pkg/messaging"
	redisBroker "github.com/Ang3lito/rabiesresq/pkg/messaging/redis"
	"github.com/Ang3lito/rabiesresq/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
	})
	zl := *appLogger.Zerolog()

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisBroker.NewBroker(redisBroker.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &zl)
		if err != nil {
			zl.Warn().Err(err).Msg("redis unavailable, event publishing disabled")
			broker = nil
		} else {
			defer broker.Close()
		}
	}

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP, cfg.BaseURL)
	}

	m := metrics.New("rabiesresq_worker")

	notifier := worker.NewNotifier(
		postgres.NewNotificationRepository(db),
		postgres.NewUserRepository(db),
		emailSvc,
		broker,
		m,
		zl,
		cfg.Dispatcher.BatchSize,
		cfg.Dispatcher.PollInterval,
	)
	auditStats := worker.NewAuditStats(postgres.NewAuditRepository(db), m, zl, 0)

	ctx, cancel := context.WithCancel(context.Background())
	go notifier.Start(ctx)
	go auditStats.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info().Msg("shutting down")
	cancel()
}
