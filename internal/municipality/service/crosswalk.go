package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"njgeo/internal/municipality/models"
	"njgeo/internal/paging"
	"njgeo/internal/platform/tracing"
	dErrors "njgeo/pkg/domain-errors"
)

// Crosswalk maps the GEOIDs valid in year to those their municipalities had in
// yearRef. Pages are cut over year's rows before the join, so every row of the
// page appears exactly once and RecordCount counts year's rows only.
func (s *Service) Crosswalk(ctx context.Context, year, yearRef int, p paging.Params) (page paging.Page[models.Xref], err error) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, s.tracer, "municipality.Crosswalk",
		attribute.Int("year", year),
		attribute.Int("year_ref", yearRef),
		attribute.Int("page_size", p.PageSize),
		attribute.Int("page_number", p.PageNumber),
	)
	defer func() {
		tracing.End(span, err)
		s.metrics.ObserveQuery("municipality.crosswalk", start, err)
	}()

	rows, err := s.rows(ctx)
	if err != nil {
		return paging.Page[models.Xref]{}, err
	}

	current := Resolve(rows, year)
	if len(current) == 0 {
		return paging.Page[models.Xref]{}, yearNotFound(year)
	}
	resolved, err := paging.Paginate(current, p)
	if err != nil {
		return paging.Page[models.Xref]{}, err
	}
	reference := Resolve(rows, yearRef)
	if len(reference) == 0 {
		return paging.Page[models.Xref]{}, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("Reference year %d not found", yearRef))
	}

	page = paging.Map(resolved, join(refIndex(reference), year, yearRef))
	page.Meta.Year = year
	page.Meta.YearRef = yearRef
	return page, nil
}

// refIndex keys reference rows by GEOID_Y2K. At most one row per key is valid
// in a year; should the data break that, the first row in table order wins.
func refIndex(reference []models.Municipality) map[string]string {
	idx := make(map[string]string, len(reference))
	for _, m := range reference {
		if _, ok := idx[m.GEOIDY2K]; !ok {
			idx[m.GEOIDY2K] = m.GEOID
		}
	}
	return idx
}

func join(idx map[string]string, year, yearRef int) func(models.Municipality) models.Xref {
	return func(m models.Municipality) models.Xref {
		x := models.Xref{YearRef: yearRef, Year: year, GEOID: m.GEOID}
		if ref, ok := idx[m.GEOIDY2K]; ok {
			x.GEOIDRef = &ref
		}
		return x
	}
}
