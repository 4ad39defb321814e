package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		EnrollmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "squadup_enrollments_created_total",
			Help: "The total number of enrollments written.",
		}),
		EnrollmentsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "squadup_enrollments_rejected_total",
			Help: "The total number of enrollment attempts that failed, by error kind.",
		}, []string{"kind"}),
		TeamSwaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "squadup_team_swaps_total",
			Help: "The total number of committed team swaps.",
		}),
		StatsFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "squadup_stats_fetch_duration_seconds",
			Help:    "The duration of calls to the stats API.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "squadup_events_published_total",
			Help: "The total number of domain events published, by event type.",
		}, []string{"event"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "squadup_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "squadup_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "squadup_http_requests_total",
			Help: "The total number of handled HTTP requests, by route pattern and status code.",
		}, []string{"route", "status"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "squadup_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.EnrollmentsCreated,
		s.EnrollmentsRejected,
		s.TeamSwaps,
		s.StatsFetchDuration,
		s.EventsPublished,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.HTTPRequests,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncEnrollmentsCreated() {
	s.EnrollmentsCreated.Inc()
}

func (s *Service) IncEnrollmentsRejected(kind string) {
	s.EnrollmentsRejected.WithLabelValues(kind).Inc()
}

func (s *Service) IncTeamSwaps() {
	s.TeamSwaps.Inc()
}

func (s *Service) ObserveStatsFetchDuration(seconds float64) {
	s.StatsFetchDuration.Observe(seconds)
}

func (s *Service) IncEventsPublished(event string) {
	s.EventsPublished.WithLabelValues(event).Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncHTTPRequests(route string, status int) {
	s.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
