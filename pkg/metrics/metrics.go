package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigilo_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// AgencyRegistrations counts tenant provisioning attempts and their outcome (success|duplicate|error).
	AgencyRegistrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigilo_agency_registrations_total",
			Help: "Total number of agency registration attempts",
		},
		[]string{"result"},
	)

	// ComplianceReports counts compliance summary generations.
	ComplianceReports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigilo_compliance_reports_total",
			Help: "Total number of compliance summaries produced",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vigilo_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
