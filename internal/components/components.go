package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/KartikeAnuj/Disaster-Management/internal/api"
	"github.com/KartikeAnuj/Disaster-Management/internal/config"
	"github.com/KartikeAnuj/Disaster-Management/internal/mq"
	"github.com/KartikeAnuj/Disaster-Management/internal/service"
	"github.com/KartikeAnuj/Disaster-Management/internal/storage/postgres"
	"github.com/KartikeAnuj/Disaster-Management/internal/storage/redis"
	"github.com/KartikeAnuj/Disaster-Management/internal/workers"
	"github.com/KartikeAnuj/Disaster-Management/pkg/logger"
)

type Components struct {
	logger         *slog.Logger
	HttpServer     *api.Server
	Postgres       *postgres.Postgres
	Redis          *redis.Redis
	EventQueue     *redis.EventQueue
	EventPublisher *mq.AlertEventPublisher
	EventSender    *service.EventSender
	CacheRefresher *workers.CacheRefresher
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")

	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	alertCache := redis.NewAlertCache(redisClient)
	eventQueue := redis.NewEventQueue(redisClient.Client, "alerts:events")

	adminSvc := service.NewAdminAlertService(storage.Alerts(), eventQueue, alertCache, logger, cfg.Postgres.QueryTimeout)
	publicSvc := service.NewPublicAlertService(storage.Alerts(), alertCache, cfg.Redis.CacheTTL, logger, cfg.Postgres.QueryTimeout)
	statsSvc := service.NewStatsService(storage.Stats(), cfg.Postgres.QueryTimeout)

	srv := service.NewService(adminSvc, publicSvc, statsSvc)

	httpServer := api.NewServer(cfg, logger, srv)
	logger.Info("Initialized server")

	comps := &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		EventQueue: eventQueue,
		CacheRefresher: workers.NewCacheRefresher(
			storage.Alerts(), alertCache, logger, 30*time.Second, cfg.Redis.CacheTTL,
		),
	}

	if !cfg.Kafka.Disabled {
		comps.EventPublisher = mq.NewAlertEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		comps.EventSender = service.NewEventSender(logger, eventQueue, comps.EventPublisher)
	}

	return comps, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.logger.Error("Kafka writer close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
