package metrics

import (
	"net/http"
	"time"

	"github.com/Aashish23092/default-report-dataset/dto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Document outcomes.
const (
	OutcomeExtracted = "extracted"
	OutcomeEmpty     = "empty"
	OutcomeFailed    = "failed"
)

// Recorder tracks extraction results on its own registry. A nil Recorder
// is valid and records nothing.
type Recorder struct {
	registry  *prometheus.Registry
	documents *prometheus.CounterVec
	missing   *prometheus.CounterVec
	duration  prometheus.Histogram
	invalid   prometheus.Counter
	pages     prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reports_documents_processed_total",
			Help: "Report documents processed, by outcome.",
		}, []string{"outcome"}),
		missing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reports_metric_missing_total",
			Help: "Metrics that could not be located in a processed document.",
		}, []string{"metric"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reports_extraction_seconds",
			Help:    "Time spent extracting one report document.",
			Buckets: prometheus.DefBuckets,
		}),
		invalid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reports_documents_invalid_total",
			Help: "Report documents that failed structural validation.",
		}),
		pages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "reports_document_pages",
			Help:    "Page count of each inspected report document.",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		}),
	}
	r.registry.MustRegister(r.documents, r.missing, r.duration, r.invalid, r.pages)
	return r
}

// ObserveDocument records one processed document.
func (r *Recorder) ObserveDocument(outcome string, elapsed time.Duration, m dto.Metrics) {
	if r == nil {
		return
	}
	r.documents.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
	for _, name := range dto.MetricOrder {
		if m[name] == nil {
			r.missing.WithLabelValues(string(name)).Inc()
		}
	}
}

// ObserveStructure records the structural check of one document. Page
// counts are only observed when the document could be counted.
func (r *Recorder) ObserveStructure(valid bool, pages int) {
	if r == nil {
		return
	}
	if !valid {
		r.invalid.Inc()
	}
	if pages > 0 {
		r.pages.Observe(float64(pages))
	}
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
