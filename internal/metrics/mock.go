package metrics

import (
	"fmt"
	"sync"
)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	enrollmentsCreated  int
	enrollmentsRejected map[string]int
	teamSwaps           int
	statsFetches        []float64
	eventsPublished     map[string]int
	slackNotifSent      int
	slackNotifFailed    int
	httpRequests        map[string]int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		enrollmentsRejected: make(map[string]int),
		eventsPublished:     make(map[string]int),
		httpRequests:        make(map[string]int),
	}
}

func (m *Mock) IncEnrollmentsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enrollmentsCreated++
}

func (m *Mock) IncEnrollmentsRejected(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enrollmentsRejected[kind]++
}

func (m *Mock) IncTeamSwaps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamSwaps++
}

func (m *Mock) ObserveStatsFetchDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsFetches = append(m.statsFetches, seconds)
}

func (m *Mock) IncEventsPublished(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished[event]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncHTTPRequests(route string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.httpRequests[requestKey(route, status)]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// EnrollmentsCreated returns the number of times IncEnrollmentsCreated was called.
func (m *Mock) EnrollmentsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enrollmentsCreated
}

// EnrollmentsRejected returns how often IncEnrollmentsRejected was called with kind.
func (m *Mock) EnrollmentsRejected(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enrollmentsRejected[kind]
}

// TeamSwaps returns the number of times IncTeamSwaps was called.
func (m *Mock) TeamSwaps() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamSwaps
}

// StatsFetches returns the number of observed stats API calls.
func (m *Mock) StatsFetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.statsFetches)
}

// EventsPublished returns how often IncEventsPublished was called with event.
func (m *Mock) EventsPublished(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished[event]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// HTTPRequests returns how often IncHTTPRequests was called with route and status.
func (m *Mock) HTTPRequests(route string, status int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.httpRequests[requestKey(route, status)]
}

func requestKey(route string, status int) string {
	return fmt.Sprintf("%s|%d", route, status)
}
