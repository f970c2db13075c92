// Package main is the entry point for the smart-queue-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"smart-queue-service/internal/app/service"
	"smart-queue-service/internal/config"
	"smart-queue-service/internal/domain"
	"smart-queue-service/internal/infra/jsonstore"
	"smart-queue-service/internal/infra/library"
	"smart-queue-service/internal/infra/provider"
	"smart-queue-service/internal/infra/provider/metadata"
	rediscache "smart-queue-service/internal/infra/redis"
	"smart-queue-service/internal/job"
	"smart-queue-service/internal/logger"
	"smart-queue-service/internal/transport/httpserver"
	"smart-queue-service/internal/validator"
	"smart-queue-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting smart-queue-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Score document store
	store := jsonstore.New(cfg.Store.ScoreFile, log.Logger)
	log.Info("score store ready", zap.String("path", cfg.Store.ScoreFile))

	// Library membership index
	libraryIndex := library.NewHistoryIndex(cfg.Store.HistoryFile, log.Logger)

	// Metadata source client
	metadataSource := metadata.New(
		provider.ClientConfig{
			BaseURL: cfg.Source.Metadata.BaseURL,
			Timeout: cfg.Source.Metadata.Timeout,
			Retry: provider.RetryConfig{
				MaxAttempts: cfg.Source.Metadata.Retry.MaxAttempts,
				WaitTime:    cfg.Source.Metadata.Retry.WaitTime,
				MaxWaitTime: cfg.Source.Metadata.Retry.MaxWaitTime,
			},
			CB: provider.CBConfig{
				MaxRequests:  cfg.Source.Metadata.CB.MaxRequests,
				Interval:     cfg.Source.Metadata.CB.Interval,
				Timeout:      cfg.Source.Metadata.CB.Timeout,
				FailureRatio: cfg.Source.Metadata.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	sources := []domain.VideoSource{metadataSource}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Ranking cache (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("ranking cache enabled",
			zap.Duration("queue_ttl", cfg.Cache.QueueTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("ranking cache disabled")
	}

	// Create services
	scoringSvc := service.NewScoringService(store, cache, log.Logger)
	rankingSvc := service.NewRankingService(store, libraryIndex, cache, cfg.Cache.QueueTTL, log.Logger)
	refreshSvc := service.NewRefreshService(sources, scoringSvc, log.Logger)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Readiness: Redis must answer and the score directory must be writable
	ready := func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		return redisClient.Ping(pingCtx).Err() == nil && store.Writable()
	}

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			AppName:   cfg.App.Name,
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		scoringSvc,
		rankingSvc,
		refreshSvc,
		ready,
		v,
		log.Logger,
	)

	// Start refresh scheduler with distributed locking
	scheduler := job.NewRefreshScheduler(
		refreshSvc,
		job.RefreshConfig{
			Interval:  cfg.Refresh.Interval,
			Timeout:   cfg.Refresh.Timeout,
			OnStartup: cfg.Refresh.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	scheduler.Start(cfg.Refresh.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		scheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
