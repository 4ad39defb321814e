package enrollment

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetUserFunc           func(ctx context.Context, userID int64) (*Player, error)
	GetTournamentFunc     func(ctx context.Context, tournamentID int64) (*Tournament, error)
	IsEnrolledFunc        func(ctx context.Context, userID, tournamentID int64) (bool, error)
	InsertEnrollmentFunc  func(ctx context.Context, e *Enrollment) error
	CountEnrolledFunc     func(ctx context.Context, tournamentID int64) (int, error)
	ListEnrolledFunc      func(ctx context.Context, tournamentID int64) ([]EnrolledPlayer, error)
	GetEnrollmentInfoFunc func(ctx context.Context, tournamentID int64, battlenetID string) (*EnrolledPlayer, error)
	ListTeamNamesFunc     func(ctx context.Context, tournamentID int64) ([]TeamName, error)
	SwapTeamsFunc         func(ctx context.Context, tournamentID int64, battlenetID1, battlenetID2 string) error

	// Call records
	InsertEnrollmentCalls []*Enrollment
	SwapTeamsCalls        []SwapTeamsCall
}

// SwapTeamsCall holds the arguments for a call to SwapTeams.
type SwapTeamsCall struct {
	TournamentID int64
	BattlenetID1 string
	BattlenetID2 string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertEnrollmentCalls = nil
	m.SwapTeamsCalls = nil
}

func (m *MockStore) GetUser(ctx context.Context, userID int64) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetTournament(ctx context.Context, tournamentID int64) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(ctx, tournamentID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) IsEnrolled(ctx context.Context, userID, tournamentID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsEnrolledFunc != nil {
		return m.IsEnrolledFunc(ctx, userID, tournamentID)
	}
	return false, nil
}

func (m *MockStore) InsertEnrollment(ctx context.Context, e *Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertEnrollmentCalls = append(m.InsertEnrollmentCalls, e)
	if m.InsertEnrollmentFunc != nil {
		return m.InsertEnrollmentFunc(ctx, e)
	}
	return nil
}

func (m *MockStore) CountEnrolled(ctx context.Context, tournamentID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountEnrolledFunc != nil {
		return m.CountEnrolledFunc(ctx, tournamentID)
	}
	return 0, nil
}

func (m *MockStore) ListEnrolled(ctx context.Context, tournamentID int64) ([]EnrolledPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListEnrolledFunc != nil {
		return m.ListEnrolledFunc(ctx, tournamentID)
	}
	return []EnrolledPlayer{}, nil
}

func (m *MockStore) GetEnrollmentInfo(ctx context.Context, tournamentID int64, battlenetID string) (*EnrolledPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetEnrollmentInfoFunc != nil {
		return m.GetEnrollmentInfoFunc(ctx, tournamentID, battlenetID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListTeamNames(ctx context.Context, tournamentID int64) ([]TeamName, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListTeamNamesFunc != nil {
		return m.ListTeamNamesFunc(ctx, tournamentID)
	}
	return []TeamName{}, nil
}

func (m *MockStore) SwapTeams(ctx context.Context, tournamentID int64, battlenetID1, battlenetID2 string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SwapTeamsCalls = append(m.SwapTeamsCalls, SwapTeamsCall{tournamentID, battlenetID1, battlenetID2})
	if m.SwapTeamsFunc != nil {
		return m.SwapTeamsFunc(ctx, tournamentID, battlenetID1, battlenetID2)
	}
	return nil
}
