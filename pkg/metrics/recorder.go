package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for answered questions.
const (
	OutcomeMatched   = "matched"
	OutcomeNoMatch   = "no_match"
	OutcomeEmptyBase = "empty_knowledge_base"
)

// Recorder exposes Prometheus metrics for the FAQ service.
// A nil Recorder discards observations.
type Recorder struct {
	queriesTotal  *prometheus.CounterVec
	topScore      prometheus.Histogram
	queryDuration prometheus.Histogram
	loadsTotal    *prometheus.CounterVec
	records       prometheus.Gauge
}

// NewRecorder registers the FAQ metrics on reg.
//
// Metrics:
//   - faq_queries_total{outcome}
//   - faq_top_score
//   - faq_query_duration_seconds
//   - faq_loads_total{source,success}
//   - faq_records
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		queriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faq_queries_total",
				Help: "Total number of questions answered",
			},
			[]string{"outcome"},
		),
		topScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "faq_top_score",
			Help:    "Similarity score of the best candidate per question",
			Buckets: prometheus.LinearBuckets(0.05, 0.05, 20),
		}),
		queryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "faq_query_duration_seconds",
			Help:    "Time spent ranking a question",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		loadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "faq_loads_total",
				Help: "Total number of knowledge base loads",
			},
			[]string{"source", "success"},
		),
		records: factory.NewGauge(prometheus.GaugeOpts{
			Name: "faq_records",
			Help: "Number of question/answer records currently served",
		}),
	}
}

// ObserveQuery records one answered question.
func (r *Recorder) ObserveQuery(outcome string, stats QueryStats, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.queriesTotal.WithLabelValues(outcome).Inc()
	if !stats.IsZero() {
		r.topScore.Observe(stats.TopScore)
	}
	r.queryDuration.Observe(elapsed.Seconds())
}

// ObserveLoad records a knowledge base load attempt.
func (r *Recorder) ObserveLoad(source string, success bool, records int) {
	if r == nil {
		return
	}
	r.loadsTotal.WithLabelValues(source, strconv.FormatBool(success)).Inc()
	if success {
		r.records.Set(float64(records))
	}
}
