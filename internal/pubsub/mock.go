package pubsub

import (
	"context"
	"sync"
)

// MockPubSubClient is a mock implementation of PubSubClient for testing.
// It is safe for concurrent use.
type MockPubSubClient struct {
	mu sync.Mutex

	// Spies for method calls
	PublishFunc        func(ctx context.Context, event EventType, data any) error
	ProcessMessageFunc func(data []byte, returnValue any) error

	// Call records
	PublishCalls []PublishCall
}

// PublishCall holds the arguments for a call to Publish.
type PublishCall struct {
	Event EventType
	Data  any
}

// NewMock creates a new mock PubSubClient.
func NewMock() *MockPubSubClient {
	return &MockPubSubClient{}
}

// Reset clears all call records.
func (m *MockPubSubClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
}

// Publish records the call and executes the mock function if provided.
func (m *MockPubSubClient) Publish(ctx context.Context, event EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, PublishCall{Event: event, Data: data})
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event, data)
	}
	return nil
}

// ProcessMessage executes the mock function if provided, otherwise decodes MessagePack.
func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ProcessMessageFunc != nil {
		return m.ProcessMessageFunc(data, returnValue)
	}
	return Decode(data, returnValue)
}

func (m *MockPubSubClient) Close() error {
	return nil
}

// Events returns the event types published so far, in order.
func (m *MockPubSubClient) Events() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]EventType, 0, len(m.PublishCalls))
	for _, c := range m.PublishCalls {
		events = append(events, c.Event)
	}
	return events
}
