package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Yimmi-urbano/dencia-app-front/internal/api"
	"github.com/Yimmi-urbano/dencia-app-front/internal/config"
	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/geocoding"
	"github.com/Yimmi-urbano/dencia-app-front/internal/location"
	"github.com/Yimmi-urbano/dencia-app-front/internal/redis"
	"github.com/Yimmi-urbano/dencia-app-front/internal/render"
	"github.com/Yimmi-urbano/dencia-app-front/internal/service"
	"github.com/Yimmi-urbano/dencia-app-front/internal/storage/remote"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/logger"
	"github.com/Yimmi-urbano/dencia-app-front/web"
)

const (
	draftsPrefix    = "drafts"
	feedViewsPrefix = "feed_views"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Redis      *redis.Redis
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	drafts := redis.NewStore[domain.Draft](redisClient.Client, draftsPrefix, cfg.Redis.DraftTTL)
	feedViews := redis.NewStore[domain.FeedView](redisClient.Client, feedViewsPrefix, cfg.Redis.FeedViewTTL)

	reports := remote.NewReportsClient(cfg.Reports, logger)

	geocoder, err := geocoding.New(cfg.Geocoder, logger)
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to init geocoder: %w", err)
	}
	logger.Info("Geocoder ready", slog.String("provider", cfg.Geocoder.Provider))

	resolver := location.NewResolver(geocoder, logger)

	composerSvc := service.NewComposerService(drafts, reports, resolver, logger)
	feedSvc := service.NewFeedService(feedViews, reports, logger)
	svc := service.NewService(composerSvc, feedSvc)

	renderer, err := render.NewRenderer(web.Templates, "templates/*.html")
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	httpServer := api.NewServer(cfg, logger, svc, renderer, redisClient)
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Redis:      redisClient,
	}, nil
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

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
