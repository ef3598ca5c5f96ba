package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"njgeo/internal/municipality/models"
	"njgeo/internal/paging"
	"njgeo/internal/platform/config"
	"njgeo/internal/platform/metrics"
	"njgeo/internal/platform/tracing"
	dErrors "njgeo/pkg/domain-errors"
)

// Table yields the loaded municipality rows, ordered by GEOID_Y2K.
// Implementations return a shared read-only slice.
type Table interface {
	Municipalities(ctx context.Context) ([]models.Municipality, error)
}

// Service answers year-resolved municipality queries.
type Service struct {
	table       Table
	defaultYear int
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
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

// WithDefaultYear sets the year used by queries that name none.
func WithDefaultYear(year int) Option {
	return func(s *Service) {
		s.defaultYear = year
	}
}

// New constructs a Service.
func New(table Table, opts ...Option) *Service {
	s := &Service{
		table:       table,
		defaultYear: config.DefaultYear,
		tracer:      tracing.Tracer("municipality"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// DefaultYear is the year applied when a caller does not choose one.
func (s *Service) DefaultYear() int {
	return s.defaultYear
}

// List returns one page of the municipalities valid in year.
func (s *Service) List(ctx context.Context, year int, p paging.Params) (page paging.Page[models.Snapshot], err error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, s.tracer, "municipality.List",
		attribute.Int("year", year),
		attribute.Int("page_size", p.PageSize),
		attribute.Int("page_number", p.PageNumber),
	)
	defer func() {
		tracing.End(span, err)
		s.metrics.ObserveQuery("municipality.list", start, err)
	}()

	rows, err := s.rows(ctx)
	if err != nil {
		return paging.Page[models.Snapshot]{}, err
	}
	current := Resolve(rows, year)
	if len(current) == 0 {
		return paging.Page[models.Snapshot]{}, yearNotFound(year)
	}
	resolved, err := paging.Paginate(current, p)
	if err != nil {
		return paging.Page[models.Snapshot]{}, err
	}

	page = paging.Map(resolved, func(m models.Municipality) models.Snapshot { return m.At(year) })
	page.Meta.Year = year
	return page, nil
}

// Get returns the municipality whose GEOID is valid in year as a single-row result.
func (s *Service) Get(ctx context.Context, geoid string, year int) (page paging.Page[models.Snapshot], err error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, s.tracer, "municipality.Get",
		attribute.String("geoid", geoid),
		attribute.Int("year", year),
	)
	defer func() {
		tracing.End(span, err)
		s.metrics.ObserveQuery("municipality.get", start, err)
	}()

	rows, err := s.rows(ctx)
	if err != nil {
		return paging.Page[models.Snapshot]{}, err
	}
	for _, m := range rows {
		if m.GEOID == geoid && m.ValidIn(year) {
			return paging.Page[models.Snapshot]{
				Items: []models.Snapshot{m.At(year)},
				Meta:  paging.Meta{Year: year, GEOID: geoid},
			}, nil
		}
	}
	return paging.Page[models.Snapshot]{}, dErrors.New(dErrors.CodeNotFound,
		fmt.Sprintf("Year %d not found for GEOID %s", year, geoid))
}

func (s *Service) rows(ctx context.Context) ([]models.Municipality, error) {
	rows, err := s.table.Municipalities(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load municipality table", "error", err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load municipality table")
	}
	return rows, nil
}

func yearNotFound(year int) error {
	return dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Year %d not found", year))
}
