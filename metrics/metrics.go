// Package metrics exposes prometheus collectors for the audit service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AuditsTotal counts audit requests by outcome (ok, fetch_error,
	// parse_error, invalid_request).
	AuditsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seoaudit_audits_total",
			Help: "Number of audit requests by outcome.",
		},
		[]string{"outcome"},
	)

	// AuditDuration tracks the whole fetch+extract+evaluate time.
	AuditDuration = prometheus.NewSummary(
		prometheus.SummaryOpts{
			Name:       "seoaudit_audit_duration_seconds",
			Help:       "Audit duration including page fetch.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
	)

	// ScoreRatio observes totalScore/maxScore per completed audit.
	ScoreRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seoaudit_score_ratio",
			Help:    "Achieved share of the maximum score per audit.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)

// Register installs all collectors into the default registry. Call once
// at startup.
func Register() {
	prometheus.MustRegister(
		AuditsTotal,
		AuditDuration,
		ScoreRatio,
	)
}

// Handler serves the scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
