package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"njgeo/internal/county/models"
	"njgeo/internal/paging"
	"njgeo/internal/platform/metrics"
	"njgeo/internal/platform/tracing"
	dErrors "njgeo/pkg/domain-errors"
)

// Table yields the loaded county rows, ordered by GEOID.
// Implementations return a shared read-only slice.
type Table interface {
	Counties(ctx context.Context) ([]models.County, error)
}

// Service answers county list and lookup queries.
type Service struct {
	table   Table
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(table Table, opts ...Option) *Service {
	s := &Service{table: table, tracer: tracing.Tracer("county")}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// List returns one page of the county table.
func (s *Service) List(ctx context.Context, p paging.Params) (page paging.Page[models.County], err error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, s.tracer, "county.List",
		attribute.Int("page_size", p.PageSize),
		attribute.Int("page_number", p.PageNumber),
	)
	defer func() {
		tracing.End(span, err)
		s.metrics.ObserveQuery("county.list", start, err)
	}()

	rows, err := s.rows(ctx)
	if err != nil {
		return paging.Page[models.County]{}, err
	}
	return paging.Paginate(rows, p)
}

// Get returns the county with the given GEOID as a single-row result.
func (s *Service) Get(ctx context.Context, geoid string) (page paging.Page[models.County], err error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, s.tracer, "county.Get", attribute.String("geoid", geoid))
	defer func() {
		tracing.End(span, err)
		s.metrics.ObserveQuery("county.get", start, err)
	}()

	rows, err := s.rows(ctx)
	if err != nil {
		return paging.Page[models.County]{}, err
	}
	for _, c := range rows {
		if c.GEOID == geoid {
			return paging.Page[models.County]{
				Items: []models.County{c},
				Meta:  paging.Meta{GEOID: geoid},
			}, nil
		}
	}
	return paging.Page[models.County]{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("County GEOID %s not found", geoid))
}

func (s *Service) rows(ctx context.Context) ([]models.County, error) {
	rows, err := s.table.Counties(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load county table", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load county table")
	}
	return rows, nil
}
