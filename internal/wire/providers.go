// Package wire assembles the services from configuration.
package wire

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zentra/internal/common"
	"zentra/internal/config"
	"zentra/internal/dbmongo"
	"zentra/internal/dbmysql"
	"zentra/internal/feed"
	"zentra/internal/notif"
	"zentra/internal/push"
	"zentra/internal/social"
)

// NotifsApp is everything cmd/notifs-svc serves.
type NotifsApp struct {
	Config        *config.Config
	Logger        *zap.Logger
	Metrics       *prometheus.Registry
	Registry      *push.Registry
	Push          *push.Server
	Resolver      common.IdentityResolver
	Notifications *notif.NotificationHandler
	Social        *social.SocialHandler
	Feed          *feed.FeedHandler
}

type FeedApp struct {
	Config   *config.Config
	Logger   *zap.Logger
	Handlers *feed.GRPCHandlers
}

func ProvideConfig() (*config.Config, error) {
	return config.LoadConfig()
}

func ProvideLogger(cfg config.LoggingConfig) (*zap.Logger, func(), error) {
	logger, err := common.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := dbmysql.NewDatabase(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := dbmysql.Close(db); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

func ProvideMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func ProvideMetrics(reg *prometheus.Registry, channels *push.Registry) *notif.Metrics {
	return notif.NewMetrics(reg, channels)
}

func ProvideEnricher(users *dbmysql.UserRepository, posts *dbmysql.PostRepository, cfg config.NotificationConfig, logger *zap.Logger) *notif.Enricher {
	return notif.NewEnricher(users, posts, cfg.SenderCacheTTL, logger)
}

// ProvideFeedSource picks the post store named by FEED_SOURCE.
func ProvideFeedSource(cfg *config.Config, posts *dbmysql.PostRepository, logger *zap.Logger) (feed.PostSource, func(), error) {
	if cfg.Feed.Source != "mongo" {
		return feed.NewSQLSource(posts), func() {}, nil
	}

	client, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("feed source: %w", err)
	}
	logger.Info("feed reads from mongodb", zap.String("collection", cfg.MongoDB.PostsCollection))
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(ctx); err != nil {
			logger.Warn("close mongodb", zap.Error(err))
		}
	}
	return feed.NewMongoSource(dbmongo.NewPostStore(client)), cleanup, nil
}

func ProvidePaginator(source feed.PostSource, cfg *config.Config, logger *zap.Logger) *feed.Paginator {
	return feed.NewPaginator(source, cfg.Feed, cfg.SeedLocation(), logger)
}

func ProvideFeedHandler(paginator *feed.Paginator, cfg config.FeedConfig, logger *zap.Logger) *feed.FeedHandler {
	return feed.NewFeedHandler(paginator, cfg.DefaultLimit, logger)
}

func ProvideGRPCHandlers(paginator *feed.Paginator, cfg config.FeedConfig) *feed.GRPCHandlers {
	return feed.NewGRPCHandlers(paginator, cfg.DefaultLimit)
}
