package pubsub

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// loopback delivers events to an in-process handler. It is used when no
// Pub/Sub project is configured.
type loopback struct {
	handler Handler
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewLoopback returns a client that encodes events exactly like the Pub/Sub
// client and hands them to handler on a separate goroutine.
func NewLoopback(handler Handler) PubSubClient {
	return &loopback{handler: handler, timeout: 30 * time.Second}
}

func (l *loopback) Publish(ctx context.Context, event EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		// the request that published the event may already be finished
		hctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()
		if err := l.handler(hctx, event, msgpackData); err != nil {
			log.Error("Loopback event handler failed", "error", err, "event", event)
		}
	}()
	return nil
}

func (l *loopback) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

// Close waits for in-flight deliveries.
func (l *loopback) Close() error {
	l.wg.Wait()
	return nil
}
