package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RecordMutations *prometheus.CounterVec
	TxDuration      *prometheus.HistogramVec
	CascadeDeleted  *prometheus.CounterVec
	TokensIssued    prometheus.Counter
	TokensRevoked   prometheus.Counter
	LoginFailures   prometheus.Counter

	RevocationCheckDuration prometheus.Histogram
}

// New creates the metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "noticebase_records_mutations_total",
			Help: "Record mutations by entity, operation and outcome",
		}, []string{"entity", "op", "outcome"}),
		TxDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "noticebase_tx_duration_seconds",
			Help:    "Duration of record transactions",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		CascadeDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "noticebase_cascade_deleted_rows_total",
			Help: "Rows removed by driver and notice cascades, by table",
		}, []string{"table"}),
		TokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "noticebase_tokens_issued_total",
			Help: "Access tokens issued by login and refresh",
		}),
		TokensRevoked: factory.NewCounter(prometheus.CounterOpts{
			Name: "noticebase_tokens_revoked_total",
			Help: "Access tokens revoked by logout",
		}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "noticebase_login_failures_total",
			Help: "Login attempts rejected for bad credentials",
		}),
		RevocationCheckDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "noticebase_is_token_revoked_duration_ms",
			Help:    "Latency of token revocation checks in milliseconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		}),
	}
}

// ObserveMutation counts one record mutation.
func (m *Metrics) ObserveMutation(entity, op string, err error) {
	outcome := "committed"
	if err != nil {
		outcome = "rolled_back"
	}
	m.RecordMutations.WithLabelValues(entity, op, outcome).Inc()
}

// ObserveTx records how long a transaction ran.
func (m *Metrics) ObserveTx(op string, start time.Time) {
	m.TxDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// AddCascadeDeleted counts rows removed from table during a cascade.
func (m *Metrics) AddCascadeDeleted(table string, n int) {
	if n > 0 {
		m.CascadeDeleted.WithLabelValues(table).Add(float64(n))
	}
}
