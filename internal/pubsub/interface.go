package pubsub

import "context"

type PubSubClient interface {
	Publish(ctx context.Context, event EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close() error
}

// Handler receives one MessagePack encoded event.
type Handler func(ctx context.Context, event EventType, data []byte) error
