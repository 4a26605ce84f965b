package queue

import "context"

// Publisher publishes messages to a queue.
type Publisher interface {
	// Publish publishes a message to a subject/topic.
	Publish(ctx context.Context, subject string, data []byte) error

	// Close closes the connection.
	Close() error
}

// Subscriber subscribes to messages from a queue.
type Subscriber interface {
	// Subscribe subscribes to a subject/topic with a handler.
	Subscribe(subject string, handler MessageHandler) error

	// Unsubscribe unsubscribes from a subject/topic.
	Unsubscribe(subject string) error

	// Close closes the connection.
	Close() error
}

// MessageHandler handles incoming messages.
type MessageHandler func(data []byte) error

// Queue combines Publisher and Subscriber interfaces. It backs
// blockstore's lifecycle-event fan-out: one side publishes
// VolumeRotated/BlockAppended notifications, the other consumes them to
// keep a replica's view of generation ownership current.
type Queue interface {
	Publisher
	Subscriber
}
