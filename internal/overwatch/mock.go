package overwatch

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the StatsClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	FetchStatsFunc func(ctx context.Context, platform, region, accountHandle string) (StatsDocument, error)

	FetchStatsCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchStatsCalls = nil
}

func (m *MockClient) FetchStats(ctx context.Context, platform, region, accountHandle string) (StatsDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchStatsCalls = append(m.FetchStatsCalls, accountHandle)
	if m.FetchStatsFunc != nil {
		return m.FetchStatsFunc(ctx, platform, region, accountHandle)
	}
	return StatsDocument{Heroes: map[string]HeroStats{}}, nil
}
