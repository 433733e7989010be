//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"zentra/internal/common"
	"zentra/internal/config"
	"zentra/internal/dbmysql"
	"zentra/internal/notif"
	"zentra/internal/push"
	"zentra/internal/social"
)

var configSet = wire.NewSet(
	ProvideConfig,
	wire.FieldsOf(new(*config.Config), "Auth", "Notification", "Feed", "Logging"),
	ProvideLogger,
)

var storeSet = wire.NewSet(
	ProvideDatabase,
	dbmysql.NewTransactor,
	dbmysql.NewNotificationRepository,
	dbmysql.NewUserRepository,
	dbmysql.NewPostRepository,
	dbmysql.NewFollowRepository,
)

var feedSet = wire.NewSet(
	ProvideFeedSource,
	ProvidePaginator,
)

var notifSet = wire.NewSet(
	push.NewRegistry,
	common.NewIdentityResolver,
	push.NewServer,
	ProvideMetricsRegistry,
	ProvideMetrics,
	ProvideEnricher,
	notif.NewNotificationService,
	notif.NewNotificationHandler,
	wire.Bind(new(notif.EventStore), new(*dbmysql.NotificationRepository)),
	wire.Bind(new(notif.Transactor), new(*dbmysql.Transactor)),
	wire.Bind(new(notif.UserFinder), new(*dbmysql.UserRepository)),
	wire.Bind(new(notif.PostFinder), new(*dbmysql.PostRepository)),
	wire.Bind(new(notif.ConnLookup), new(*push.Registry)),
)

var socialSet = wire.NewSet(
	social.NewSocialService,
	social.NewSocialHandler,
	wire.Bind(new(social.Notifier), new(*notif.NotificationService)),
	wire.Bind(new(social.PostStore), new(*dbmysql.PostRepository)),
	wire.Bind(new(social.FollowStore), new(*dbmysql.FollowRepository)),
	wire.Bind(new(social.UserFinder), new(*dbmysql.UserRepository)),
)

func InitializeNotifsApp() (*NotifsApp, func(), error) {
	wire.Build(
		configSet,
		storeSet,
		feedSet,
		notifSet,
		socialSet,
		ProvideFeedHandler,
		wire.Struct(new(NotifsApp), "*"),
	)
	return nil, nil, nil
}

func InitializeFeedApp() (*FeedApp, func(), error) {
	wire.Build(
		configSet,
		ProvideDatabase,
		dbmysql.NewPostRepository,
		feedSet,
		ProvideGRPCHandlers,
		wire.Struct(new(FeedApp), "*"),
	)
	return nil, nil, nil
}
