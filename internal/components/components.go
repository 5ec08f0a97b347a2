package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"saferoute/internal/api"
	"saferoute/internal/api/handlers/http/system"
	"saferoute/internal/broadcast"
	"saferoute/internal/config"
	"saferoute/internal/hazard"
	"saferoute/internal/kafka"
	"saferoute/internal/observability"
	"saferoute/internal/osm"
	"saferoute/internal/redis"
	"saferoute/internal/seed"
	"saferoute/internal/service"
	"saferoute/internal/storage/postgres"
	"saferoute/internal/workers"
)

const (
	webhookQueueKey = "webhooks:queue"
	exportTimeout   = 5 * time.Second
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Hub        *broadcast.Hub
	Exporter   *workers.Exporter
	Webhook    *service.WebhookSender // nil unless WebhookEnabled
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Kafka      *kafka.Writer
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Loading seed data", slog.String("file", cfg.SeedFile))
	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}

	metrics := observability.NewMetrics()
	store := hazard.NewStore(clockwork.NewRealClock(), data.Hazards...)
	hub := broadcast.NewHub(broadcast.NewRegistry(cfg.Broadcast.SendBuffer), logger, metrics)

	c := &Components{logger: logger, Hub: hub}
	checkers := make(map[string]system.Checker)
	var sinks []workers.Sink

	if cfg.Postgres.Enabled {
		logger.Info("Initializing Postgres")
		pg, err := postgres.NewPostgres(ctx, cfg, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		c.Postgres = pg
		checkers["postgres"] = pg.Ping
		sinks = append(sinks, workers.Sink{Name: "journal", Export: pg.Journal.Append})
	}

	var searcher service.PlaceSearcher = osm.NewNominatim(cfg.External.NominatimURL, cfg.External.UserAgent, cfg.External.Timeout, logger)

	if cfg.Redis.Enabled {
		logger.Info("Initializing Redis")
		r, err := redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.Redis = r
		checkers["redis"] = r.Ping
		searcher = redis.NewSearchCache(searcher, r, cfg.External.SearchCacheTTL, logger)

		if cfg.WebhookEnabled() {
			queue := redis.NewWebhookQueue(r.Client, webhookQueueKey)
			sinks = append(sinks, workers.WebhookSink(queue))
			c.Webhook = service.NewWebhookSender(logger, cfg.Webhook, queue)
		}
	}

	if cfg.Kafka.Enabled() {
		logger.Info("Initializing Kafka writer", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
		c.Kafka = kafka.NewWriter(cfg.Kafka)
		sinks = append(sinks, workers.Sink{Name: "kafka", Export: c.Kafka.Write})
	}

	c.Exporter = workers.NewExporter(hub, sinks, exportTimeout, logger, metrics)

	svc := service.NewService(
		service.NewHazardService(store, hub, logger, metrics),
		service.NewSpeedZoneService(data.SpeedZones),
		service.NewNavigationService(
			searcher,
			osm.NewOSRM(cfg.External.OSRMURL, cfg.External.UserAgent, cfg.External.Timeout, logger),
			logger,
			metrics,
		),
		service.NewAuthService(cfg.Auth, logger),
	)

	c.HttpServer = api.NewServer(cfg, logger, svc, hub, checkers)
	logger.Info("Initialized server",
		slog.Int("hazards", len(data.Hazards)),
		slog.Int("speed_zones", len(data.SpeedZones)),
		slog.Int("export_sinks", len(sinks)),
	)

	return c, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
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

// ShutdownAll releases whatever InitComponents managed to open.
func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	if c.Hub != nil {
		c.Hub.Close()
	}
	if c.Kafka != nil {
		if err := c.Kafka.Close(); err != nil {
			c.logger.Error("Kafka close failed", slog.String("err", err.Error()))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}
	if c.Postgres != nil {
		c.Postgres.Close()
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
