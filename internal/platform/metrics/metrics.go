package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	dErrors "njgeo/pkg/domain-errors"
)

// Query outcomes recorded on njgeo_queries_total.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	QueriesTotal      *prometheus.CounterVec
	QueryDuration     *prometheus.HistogramVec
	TableLoadDuration *prometheus.HistogramVec
	TableRows         *prometheus.GaugeVec
}

// New creates the application metrics and registers them with reg.
// Passing prometheus.DefaultRegisterer exposes them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		QueriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "njgeo_queries_total",
			Help: "Total reference data queries by operation and outcome",
		}, []string{"operation", "outcome"}),
		QueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "njgeo_query_duration_seconds",
			Help:    "Duration of reference data queries, including lazy table loads",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),
		TableLoadDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "njgeo_table_load_duration_seconds",
			Help:    "Duration of loading a reference table from the backing store",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"table"}),
		TableRows: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "njgeo_table_rows",
			Help: "Number of rows held in memory per reference table",
		}, []string{"table"}),
	}
}

// ObserveQuery records the outcome and duration of a query.
// Call with time.Now() taken at the start of the operation.
func (m *Metrics) ObserveQuery(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(operation, outcome(err)).Inc()
	m.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveTableLoad records a completed table load.
func (m *Metrics) ObserveTableLoad(table string, rows int, start time.Time) {
	if m == nil {
		return
	}
	m.TableLoadDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())
	m.TableRows.WithLabelValues(table).Set(float64(rows))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
