package storage

import "context"

// Backend represents a destination for persisted records and images.
// Keys are slash-separated paths like
// {domain}/{run_timestamp}[/{prefix}]/{sku}/product.json.
type Backend interface {
	// Put writes body under key with the given content type
	Put(ctx context.Context, key string, contentType string, body []byte) error

	// Name returns the backend name for logging
	Name() string
}
