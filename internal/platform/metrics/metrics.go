package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the vote pipeline. All methods
// are safe to call on a nil *Metrics.
type Metrics struct {
	VoteOutcome     *prometheus.CounterVec
	TallyLatency    prometheus.Histogram
	Subscribers     prometheus.Gauge
	EventsDelivered *prometheus.CounterVec
	EventsDropped   prometheus.Counter
	VotesReassigned prometheus.Counter
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer lets tests register into a private registry.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		VoteOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votemap_vote_submissions_total",
			Help: "Vote submissions by outcome",
		}, []string{"outcome"}), // outcome: "accepted", "revote", "cooldown", "invalid", "error"

		TallyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "votemap_tally_compute_duration_seconds",
			Help:    "Duration of tally recomputation from the ledger",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		Subscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "votemap_hub_subscriptions",
			Help: "Current number of (connection, topic) subscriptions",
		}),

		EventsDelivered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votemap_hub_events_delivered_total",
			Help: "Events queued to subscribers by event type",
		}, []string{"event"}),

		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "votemap_hub_events_dropped_total",
			Help: "Events dropped because a subscriber could not accept them",
		}),

		VotesReassigned: factory.NewCounter(prometheus.CounterOpts{
			Name: "votemap_votes_reassigned_total",
			Help: "Anonymous votes moved to an authenticated user",
		}),
	}
}

func (m *Metrics) IncrementVoteOutcome(outcome string) {
	if m != nil {
		m.VoteOutcome.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveTallyLatency(d time.Duration) {
	if m != nil {
		m.TallyLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) AddSubscriptions(delta int) {
	if m != nil {
		m.Subscribers.Add(float64(delta))
	}
}

func (m *Metrics) IncrementDelivered(event string) {
	if m != nil {
		m.EventsDelivered.WithLabelValues(event).Inc()
	}
}

func (m *Metrics) IncrementDropped() {
	if m != nil {
		m.EventsDropped.Inc()
	}
}

func (m *Metrics) AddReassigned(n int64) {
	if m != nil && n > 0 {
		m.VotesReassigned.Add(float64(n))
	}
}
