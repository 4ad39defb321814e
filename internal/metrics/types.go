package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	EnrollmentsCreated  prometheus.Counter
	EnrollmentsRejected *prometheus.CounterVec
	TeamSwaps           prometheus.Counter
	StatsFetchDuration  prometheus.Histogram
	EventsPublished     *prometheus.CounterVec
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
	StartupTimeSeconds  prometheus.Gauge
}
