// Package metrics provides a Prometheus adapter implementing ports.MatchRecorder.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/0xcro3dile/assessiq-helpdesk/internal/domain/entities"
)

const (
	outcomeMatched  = "matched"
	outcomeFallback = "fallback"
	topicNone       = "none"
)

// Recorder records match outcomes as Prometheus metrics.
type Recorder struct {
	matches  *prometheus.CounterVec
	scores   prometheus.Histogram
	duration prometheus.Histogram
}

// NewRecorder registers the help desk metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		// Labels: outcome (matched, fallback), topic (entry topic or "none")
		matches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "helpdesk",
			Name:      "matches_total",
			Help:      "Total answered queries by outcome and topic",
		}, []string{"outcome", "topic"}),

		scores: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "helpdesk",
			Name:      "match_score",
			Help:      "Winning score of matched queries",
			Buckets:   []float64{1, 2, 4, 6, 8, 12, 16, 24, 32},
		}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "helpdesk",
			Name:      "match_duration_seconds",
			Help:      "Time spent selecting an answer",
			Buckets:   prometheus.ExponentialBuckets(0.000005, 4, 8),
		}),
	}
}

// RecordMatch implements ports.MatchRecorder.
func (r *Recorder) RecordMatch(outcome entities.MatchOutcome, elapsed time.Duration) {
	r.duration.Observe(elapsed.Seconds())

	if outcome.Fallback {
		r.matches.WithLabelValues(outcomeFallback, topicNone).Inc()
		return
	}

	topic := outcome.Topic
	if topic == "" {
		topic = topicNone
	}
	r.matches.WithLabelValues(outcomeMatched, topic).Inc()
	r.scores.Observe(outcome.Score)
}
