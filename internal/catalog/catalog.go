// Package catalog holds the process-wide, read-only reference tables.
//
// Tables are loaded from a Loader on first use and then shared by every
// request. Concurrent first calls share a single load; a failed load is not
// remembered, so the next call tries again. Loaded slices must not be mutated.
package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	countymodels "njgeo/internal/county/models"
	municipalitymodels "njgeo/internal/municipality/models"
	"njgeo/internal/platform/metrics"
	"njgeo/internal/platform/tracing"
)

// Logical table names used for logs, metrics and singleflight keys.
const (
	TableCounties       = "counties"
	TableMunicipalities = "municipalities"
)

// CountyLoader reads every county row from a backing store.
type CountyLoader interface {
	LoadCounties(ctx context.Context) ([]countymodels.County, error)
}

// MunicipalityLoader reads every municipality row from a backing store.
type MunicipalityLoader interface {
	LoadMunicipalities(ctx context.Context) ([]municipalitymodels.Municipality, error)
}

// Loader is implemented by each backing store adapter.
type Loader interface {
	CountyLoader
	MunicipalityLoader
}

// Catalog memoizes the reference tables for the lifetime of the process.
type Catalog struct {
	loader  Loader
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	group          singleflight.Group
	counties       atomic.Pointer[[]countymodels.County]
	municipalities atomic.Pointer[[]municipalitymodels.Municipality]
}

type Option func(c *Catalog)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Catalog) {
		c.metrics = m
	}
}

// New constructs a Catalog over loader. Nothing is loaded until first use.
func New(loader Loader, opts ...Option) (*Catalog, error) {
	if loader == nil {
		return nil, errors.New("catalog loader is required")
	}
	c := &Catalog{loader: loader, tracer: tracing.Tracer("catalog")}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Counties returns the county table ordered by GEOID.
func (c *Catalog) Counties(ctx context.Context) ([]countymodels.County, error) {
	return load(ctx, c, &c.counties, TableCounties, c.loader.LoadCounties,
		countymodels.County.Validate,
		func(a, b countymodels.County) int { return cmp.Compare(a.GEOID, b.GEOID) },
	)
}

// Municipalities returns the municipality table ordered by GEOID_Y2K. Rows
// sharing a GEOID_Y2K keep the order the loader produced them in.
func (c *Catalog) Municipalities(ctx context.Context) ([]municipalitymodels.Municipality, error) {
	return load(ctx, c, &c.municipalities, TableMunicipalities, c.loader.LoadMunicipalities,
		municipalitymodels.Municipality.Validate,
		func(a, b municipalitymodels.Municipality) int { return cmp.Compare(a.GEOIDY2K, b.GEOIDY2K) },
	)
}

// Warm loads both tables concurrently and returns the first failure.
func (c *Catalog) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.Counties(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.Municipalities(ctx)
		return err
	})
	return g.Wait()
}

func load[T any](
	ctx context.Context,
	c *Catalog,
	slot *atomic.Pointer[[]T],
	table string,
	fetch func(context.Context) ([]T, error),
	validate func(T) error,
	compare func(a, b T) int,
) ([]T, error) {
	if rows := slot.Load(); rows != nil {
		return *rows, nil
	}

	ch := c.group.DoChan(table, func() (any, error) {
		if rows := slot.Load(); rows != nil {
			return *rows, nil
		}
		// The load outlives any one waiter; a cancelled caller must not fail the others.
		rows, err := build(context.WithoutCancel(ctx), c, table, fetch, validate, compare)
		if err != nil {
			return nil, err
		}
		slot.Store(&rows)
		return rows, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]T), nil
	}
}

func build[T any](
	ctx context.Context,
	c *Catalog,
	table string,
	fetch func(context.Context) ([]T, error),
	validate func(T) error,
	compare func(a, b T) int,
) (rows []T, err error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, c.tracer, "catalog.load", attribute.String("table", table))
	defer func() { tracing.End(span, err) }()

	rows, err = fetch(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "catalog table load failed", "table", table, "error", err)
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	for i, row := range rows {
		if err := validate(row); err != nil {
			c.logger.ErrorContext(ctx, "catalog table rejected", "table", table, "row", i, "error", err)
			return nil, fmt.Errorf("load %s: row %d: %w", table, i, err)
		}
	}
	slices.SortStableFunc(rows, compare)

	c.metrics.ObserveTableLoad(table, len(rows), start)
	c.logger.InfoContext(ctx, "catalog table loaded",
		"table", table,
		"rows", len(rows),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rows, nil
}
