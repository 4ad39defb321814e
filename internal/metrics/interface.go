package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncEnrollmentsCreated()
	IncEnrollmentsRejected(kind string)
	IncTeamSwaps()
	ObserveStatsFetchDuration(seconds float64)
	IncEventsPublished(event string)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncHTTPRequests(route string, status int)
	SetStartupTime(duration float64)
}
