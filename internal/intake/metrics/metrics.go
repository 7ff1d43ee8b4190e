package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RegistrationsTotal.
const (
	OutcomeCreated     = "created"
	OutcomeInvalid     = "invalid"
	OutcomeDuplicate   = "duplicate"
	OutcomeUploadError = "upload_error"
	OutcomeStoreError  = "store_error"
)

// Metrics tracks the intake pipeline. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	RegistrationsTotal *prometheus.CounterVec
	RegisterDuration   prometheus.Histogram
	UploadBytes        *prometheus.CounterVec
	UploadDuration     *prometheus.HistogramVec
	ParseFailures      *prometheus.CounterVec
	FileCleanupErrors  prometheus.Counter
}

// New registers every intake metric with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RegistrationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "formulaire_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),
		RegisterDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "formulaire_register_duration_seconds",
			Help:    "Duration of the register operation after parsing",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		UploadBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "formulaire_upload_bytes_total",
			Help: "Bytes written to object storage by file kind",
		}, []string{"kind"}),
		UploadDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "formulaire_upload_duration_seconds",
			Help:    "Duration of a single object storage upload",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		ParseFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "formulaire_parse_failures_total",
			Help: "Multipart bodies that could not be parsed, by reason",
		}, []string{"reason"}),
		FileCleanupErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "formulaire_file_cleanup_errors_total",
			Help: "Stored files that could not be removed when deleting a registration",
		}),
	}
}

func (m *Metrics) ObserveRegistration(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(outcome).Inc()
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveUpload(kind string, size int, start time.Time) {
	if m == nil {
		return
	}
	m.UploadBytes.WithLabelValues(kind).Add(float64(size))
	m.UploadDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementParseFailure(reason string) {
	if m == nil {
		return
	}
	m.ParseFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementFileCleanupError() {
	if m == nil {
		return
	}
	m.FileCleanupErrors.Inc()
}
