package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"njgeo/internal/catalog"
	filestore "njgeo/internal/catalog/store/file"
	kafkastore "njgeo/internal/catalog/store/kafka"
	postgresstore "njgeo/internal/catalog/store/postgres"
	redisstore "njgeo/internal/catalog/store/redis"
	countyservice "njgeo/internal/county/service"
	municipalityservice "njgeo/internal/municipality/service"
	"njgeo/internal/platform/config"
	"njgeo/internal/platform/kafka"
	"njgeo/internal/platform/logger"
	"njgeo/internal/platform/metrics"
	"njgeo/internal/platform/postgres"
	"njgeo/internal/platform/redis"
)

// app is the wired object graph shared by serve and query.
type app struct {
	cfg            config.Config
	logger         *slog.Logger
	registry       *prometheus.Registry
	catalog        *catalog.Catalog
	counties       *countyservice.Service
	municipalities *municipalityservice.Service
	closers        []func() error
	pings          []func(context.Context) error
}

func newApp(ctx context.Context, opts *rootOptions, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	a := &app{
		cfg:      cfg,
		logger:   logger.New(logOut, cfg.Log),
		registry: prometheus.NewRegistry(),
	}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(a.registry)

	loader, err := a.openLoader(ctx)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.catalog, err = catalog.New(loader, catalog.WithLogger(a.logger), catalog.WithMetrics(m))
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.counties = countyservice.New(a.catalog,
		countyservice.WithLogger(a.logger),
		countyservice.WithMetrics(m),
	)
	a.municipalities = municipalityservice.New(a.catalog,
		municipalityservice.WithLogger(a.logger),
		municipalityservice.WithMetrics(m),
		municipalityservice.WithDefaultYear(cfg.Server.DefaultYear),
	)
	return a, nil
}

func (a *app) openLoader(ctx context.Context) (catalog.Loader, error) {
	data := a.cfg.Data
	switch data.Source {
	case config.SourcePostgres:
		db, err := postgres.Open(ctx, a.cfg.Postgres)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.pings = append(a.pings, db.PingContext)
		return postgresstore.New(db, data.CountiesTable, data.MunicipalitiesTable), nil
	case config.SourceRedis:
		client, err := redis.New(ctx, a.cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.pings = append(a.pings, client.Health)
		return redisstore.New(client.Client, data.CountiesTable, data.MunicipalitiesTable), nil
	case config.SourceKafka:
		client, err := kafka.New(ctx, a.cfg.Kafka)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.pings = append(a.pings, client.Health)
		return kafkastore.New(client, data.CountiesTable, data.MunicipalitiesTable, a.cfg.Kafka.LoadTimeout), nil
	default:
		return filestore.New(data.File), nil
	}
}

// health fails while the catalog cannot be loaded or a backing store is
// unreachable. Loaded tables keep serving queries either way.
func (a *app) health(ctx context.Context) error {
	errs := []error{a.catalog.Warm(ctx)}
	for _, ping := range a.pings {
		errs = append(errs, ping(ctx))
	}
	return errors.Join(errs...)
}

// Close releases backing store connections.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
