package wire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"zentra/internal/config"
	"zentra/internal/dbmysql"
	"zentra/internal/feed"
	"zentra/internal/push"
)

func TestProvideFeedSource_DefaultsToSQL(t *testing.T) {
	db, err := dbmysql.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbmysql.Close(db) })

	cfg := &config.Config{Feed: config.FeedConfig{Source: "sql", DefaultLimit: 10, MaxLimit: 100, SeedTimezone: "UTC"}}
	source, cleanup, err := ProvideFeedSource(cfg, dbmysql.NewPostRepository(db), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &feed.SQLSource{}, source)

	page, err := ProvidePaginator(source, cfg, zaptest.NewLogger(t)).Page(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestProvideMetrics_ExposesLiveChannels(t *testing.T) {
	reg := ProvideMetricsRegistry()
	ProvideMetrics(reg, push.NewRegistry(zaptest.NewLogger(t)))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["zentra_push_live_channels"])
	assert.True(t, names["go_goroutines"])
}

func TestProvideLogger_RejectsBadLevel(t *testing.T) {
	_, _, err := ProvideLogger(config.LoggingConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)

	logger, cleanup, err := ProvideLogger(config.LoggingConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	cleanup()
}
