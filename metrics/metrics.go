// Package metrics exposes Prometheus collectors for the scoring pipeline.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "ticket_tournament"

type Metrics struct {
	scoreWrites        *prometheus.CounterVec
	recomputeDuration  prometheus.Histogram
	rebuildDuration    prometheus.Histogram
	leaderboardSize    *prometheus.GaugeVec
	prizeComputations  *prometheus.CounterVec
	notificationErrors prometheus.Counter
	ticketsIssued      *prometheus.CounterVec
}

// New registers all collectors, plus the Go and process collectors, on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		scoreWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_writes_total",
			Help:      "Score submissions by outcome.",
		}, []string{"outcome"}),
		recomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ticket_totals_recompute_seconds",
			Help:      "Time spent recomputing ticket totals for a tournament.",
			Buckets:   prometheus.DefBuckets,
		}),
		rebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "leaderboard_rebuild_seconds",
			Help:      "Time spent rebuilding a team leaderboard.",
			Buckets:   prometheus.DefBuckets,
		}),
		leaderboardSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "leaderboard_teams",
			Help:      "Teams ranked by the last leaderboard rebuild.",
		}, []string{"tournament_id"}),
		prizeComputations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prize_computations_total",
			Help:      "Prize configurations processed, by rule.",
		}, []string{"rule"}),
		notificationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "winner_notification_failures_total",
			Help:      "Winner notifications that could not be delivered.",
		}),
		ticketsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_issued_total",
			Help:      "Tickets issued, by status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.scoreWrites,
		m.recomputeDuration,
		m.rebuildDuration,
		m.leaderboardSize,
		m.prizeComputations,
		m.notificationErrors,
		m.ticketsIssued,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ScoreWritten(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.scoreWrites.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRecompute(start time.Time) {
	if m == nil {
		return
	}
	m.recomputeDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ObserveRebuild(start time.Time, tournamentID string, teams int) {
	if m == nil {
		return
	}
	m.rebuildDuration.Observe(time.Since(start).Seconds())
	m.leaderboardSize.WithLabelValues(tournamentID).Set(float64(teams))
}

func (m *Metrics) PrizeComputed(rule string) {
	if m == nil {
		return
	}
	m.prizeComputations.WithLabelValues(rule).Inc()
}

func (m *Metrics) NotificationFailed() {
	if m == nil {
		return
	}
	m.notificationErrors.Inc()
}

func (m *Metrics) TicketIssued(status string) {
	if m == nil {
		return
	}
	m.ticketsIssued.WithLabelValues(status).Inc()
}
