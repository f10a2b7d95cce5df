package publisher

// Publisher represents a service for publishing persisted records to
// downstream consumers
type Publisher interface {
	// Publish publishes a message under the given key
	Publish(key string, message []byte) error

	// Close closes the publisher connection
	Close() error
}
