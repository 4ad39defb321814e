package notifier

import (
	"sync"

	"github.com/mauv0809/squadup/internal/enrollment"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendPlayerEnrolledFunc  func(tournament *enrollment.Tournament, battlenetID string, enrolled int, dryRun bool) error
	SendTournamentReadyFunc func(tournament *enrollment.Tournament, enrolled int, dryRun bool) error
	SendTeamsSwappedFunc    func(tournament *enrollment.Tournament, battlenetID1, battlenetID2 string, dryRun bool) error

	// Call records
	SendPlayerEnrolledCalls []struct {
		Tournament  *enrollment.Tournament
		BattlenetID string
		Enrolled    int
	}
	SendTournamentReadyCalls []struct {
		Tournament *enrollment.Tournament
		Enrolled   int
	}
	SendTeamsSwappedCalls []struct {
		Tournament   *enrollment.Tournament
		BattlenetID1 string
		BattlenetID2 string
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerEnrolledCalls = nil
	m.SendTournamentReadyCalls = nil
	m.SendTeamsSwappedCalls = nil
}

func (m *Mock) SendPlayerEnrolled(tournament *enrollment.Tournament, battlenetID string, enrolled int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerEnrolledCalls = append(m.SendPlayerEnrolledCalls, struct {
		Tournament  *enrollment.Tournament
		BattlenetID string
		Enrolled    int
	}{tournament, battlenetID, enrolled})
	if m.SendPlayerEnrolledFunc != nil {
		return m.SendPlayerEnrolledFunc(tournament, battlenetID, enrolled, dryRun)
	}
	return nil
}

func (m *Mock) SendTournamentReady(tournament *enrollment.Tournament, enrolled int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTournamentReadyCalls = append(m.SendTournamentReadyCalls, struct {
		Tournament *enrollment.Tournament
		Enrolled   int
	}{tournament, enrolled})
	if m.SendTournamentReadyFunc != nil {
		return m.SendTournamentReadyFunc(tournament, enrolled, dryRun)
	}
	return nil
}

func (m *Mock) SendTeamsSwapped(tournament *enrollment.Tournament, battlenetID1, battlenetID2 string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendTeamsSwappedCalls = append(m.SendTeamsSwappedCalls, struct {
		Tournament   *enrollment.Tournament
		BattlenetID1 string
		BattlenetID2 string
	}{tournament, battlenetID1, battlenetID2})
	if m.SendTeamsSwappedFunc != nil {
		return m.SendTeamsSwappedFunc(tournament, battlenetID1, battlenetID2, dryRun)
	}
	return nil
}
