package pubsub

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopback_DeliversEncodedEvent(t *testing.T) {
	var (
		mu       sync.Mutex
		received []EnrollmentCreated
		events   []EventType
	)
	var client PubSubClient
	client = NewLoopback(func(ctx context.Context, event EventType, data []byte) error {
		var payload EnrollmentCreated
		if err := client.ProcessMessage(data, &payload); err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		received = append(received, payload)
		events = append(events, event)
		return nil
	})

	sent := EnrollmentCreated{EventID: "e1", TournamentID: 3, UserID: 9, BattlenetID: "Ana#1111", OccurredAt: 1700000000}
	require.NoError(t, client.Publish(context.Background(), EventEnrollmentCreated, sent))
	require.NoError(t, client.Close())

	require.Len(t, received, 1)
	assert.Equal(t, sent, received[0])
	assert.Equal(t, []EventType{EventEnrollmentCreated}, events)
}
