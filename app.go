package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/catalog"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/fixtures"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/graph"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/orders"
	"github.com/Chative-core-poc-v1/storefront/internal/agent/repo"
	"github.com/Chative-core-poc-v1/storefront/internal/observability"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
)

// app bundles the wired pipeline and its optional infrastructure.
type app struct {
	cfg     *AppConfig
	rdb     *redis.Client
	runner  graph.Runner
	traces  model.TraceRepository
	metrics *observability.Metrics
}

func newApp(ctx context.Context, cfg *AppConfig) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialise Redis client: %w", err)
		}
		a.rdb = rdb
		logx.Info().Msg("Connected to Redis successfully")
	}

	var client redis.Cmdable
	if a.rdb != nil {
		client = a.rdb
	}
	src, err := fixtures.NewSource(cfg.Fixtures, client)
	if err != nil {
		a.Close()
		return nil, err
	}
	tables, err := src.Load(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}

	if cfg.HTTP.MetricsEnabled {
		a.metrics = observability.NewMetrics()
	}

	a.runner, err = graph.BuildPipeline(ctx, graph.Config{
		Catalog: catalog.New(tables.Products),
		Orders:  orders.NewDirectory(tables.Orders),
		Clock:   time.Now,
		Metrics: a.metrics,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	if cfg.TraceArchive.Enabled && a.rdb != nil {
		a.traces = repo.NewRedisTraceRepository(a.rdb, cfg.TraceArchive.TTL, cfg.TraceArchive.MaxEntries)
	}
	return a, nil
}

func (a *app) Close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}
