package pipeline

import (
	"context"

	"storescrapers/catalogworker/internal/item"
	"storescrapers/catalogworker/logger"
	"storescrapers/catalogworker/services/publisher"
)

// StreamPublisher pushes every persisted product record to a stream for
// downstream consumers. It is an optional stage, placed after the
// writers so only fully persisted records are announced. A publish
// failure is logged but never drops the record.
type StreamPublisher struct {
	pub    publisher.Publisher
	domain string
	log    *logger.Logger
}

// NewStreamPublisher creates a new stream publishing stage
func NewStreamPublisher(pub publisher.Publisher, domain string) *StreamPublisher {
	return &StreamPublisher{
		pub:    pub,
		domain: domain,
		log:    logger.ForPipeline("publish"),
	}
}

// Name returns the stage name
func (s *StreamPublisher) Name() string {
	return "publish"
}

// ProcessItem publishes one product record. Image records pass through
// untouched.
func (s *StreamPublisher) ProcessItem(_ context.Context, it item.Item) (item.Item, error) {
	product, ok := it.(*item.Product)
	if !ok {
		return it, nil
	}

	data, err := MarshalRecord(product)
	if err != nil {
		s.log.Error().Err(err).Str("sku", product.SKU).Msg("Failed to serialize product for publishing")
		return product, nil
	}

	if err := s.pub.Publish(s.domain, data); err != nil {
		s.log.Error().Err(err).Str("sku", product.SKU).Msg("Failed to publish product")
	}
	return product, nil
}
