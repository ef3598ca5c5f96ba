package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"njgeo/internal/county/models"
	"njgeo/internal/paging"
	"njgeo/internal/platform/metrics"
	dErrors "njgeo/pkg/domain-errors"
)

type staticTable struct {
	rows []models.County
	err  error
}

func (t staticTable) Counties(context.Context) ([]models.County, error) {
	return t.rows, t.err
}

// fifteenCounties builds GEOIDs 10001..10015 in order.
func fifteenCounties() []models.County {
	rows := make([]models.County, 0, 15)
	for i := 1; i <= 15; i++ {
		rows = append(rows, models.County{GEOID: fmt.Sprintf("%d", 10000+i), Name: fmt.Sprintf("County %d", i)})
	}
	return rows
}

type CountyServiceSuite struct {
	suite.Suite
	metrics *metrics.Metrics
	service *Service
}

func (s *CountyServiceSuite) SetupTest() {
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(staticTable{rows: fifteenCounties()}, WithMetrics(s.metrics))
}

func TestCountyServiceSuite(t *testing.T) {
	suite.Run(t, new(CountyServiceSuite))
}

func (s *CountyServiceSuite) TestList() {
	ctx := context.Background()

	s.Run("defaults return the whole table", func() {
		page, err := s.service.List(ctx, paging.Defaults())
		s.Require().NoError(err)
		s.Len(page.Items, 15)
		s.Equal(paging.Meta{PageSize: 100, PageNumber: 1, PageCount: 1, RecordCount: 15}, page.Meta)
	})

	s.Run("second page of five", func() {
		page, err := s.service.List(ctx, paging.Params{PageSize: 5, PageNumber: 2})
		s.Require().NoError(err)
		s.Require().Len(page.Items, 5)
		s.Equal("10006", page.Items[0].GEOID)
		s.Equal("10010", page.Items[4].GEOID)
		s.Equal(15, page.Meta.RecordCount)
		s.Equal(3, page.Meta.PageCount)
	})

	s.Run("page past the end is not found", func() {
		_, err := s.service.List(ctx, paging.Params{PageSize: 5, PageNumber: 4})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Contains(err.Error(), "Page number 4 not found")
	})

	s.Run("page zero is not found", func() {
		_, err := s.service.List(ctx, paging.Params{PageSize: 5, PageNumber: 0})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CountyServiceSuite) TestGet() {
	ctx := context.Background()

	s.Run("existing GEOID", func() {
		page, err := s.service.Get(ctx, "10005")
		s.Require().NoError(err)
		s.Equal([]models.County{{GEOID: "10005", Name: "County 5"}}, page.Items)
		s.Equal(paging.Meta{GEOID: "10005"}, page.Meta)
		s.False(page.Meta.Paginated())
	})

	s.Run("unknown GEOID", func() {
		_, err := s.service.Get(ctx, "10099")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("County GEOID 10099 not found", err.Error())
	})
}

func (s *CountyServiceSuite) TestLoadFailureIsInternal() {
	cause := errors.New("connection refused")
	svc := New(staticTable{err: cause}, WithMetrics(s.metrics))

	_, err := svc.List(context.Background(), paging.Defaults())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.ErrorIs(err, cause)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.QueriesTotal.WithLabelValues("county.list", metrics.OutcomeError)))
}

func (s *CountyServiceSuite) TestMetricsOutcomes() {
	ctx := context.Background()
	_, _ = s.service.Get(ctx, "10001")
	_, _ = s.service.Get(ctx, "missing")

	s.Equal(1.0, testutil.ToFloat64(s.metrics.QueriesTotal.WithLabelValues("county.get", metrics.OutcomeOK)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.QueriesTotal.WithLabelValues("county.get", metrics.OutcomeNotFound)))
}

func (s *CountyServiceSuite) TestEmptyTableHasNoPages() {
	svc := New(staticTable{})
	_, err := svc.List(context.Background(), paging.Defaults())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Contains(err.Error(), "Page number 1 not found")
}
