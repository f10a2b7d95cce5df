package pipeline

import (
	"bytes"
	"context"
	"encoding/json"

	"storescrapers/catalogworker/internal/item"
	"storescrapers/catalogworker/logger"
	"storescrapers/catalogworker/pkg/errors"
	"storescrapers/catalogworker/services/storage"
)

// ProductWriter persists product records as JSON objects under
// {domain}/{run_timestamp}[/{prefix}]/{sku}/product.json
type ProductWriter struct {
	backend      storage.Backend
	domain       string
	runTimestamp string
	folderPrefix string
	log          *logger.Logger
}

// NewProductWriter creates a new product persistence stage
func NewProductWriter(backend storage.Backend, domain, runTimestamp, folderPrefix string) *ProductWriter {
	return &ProductWriter{
		backend:      backend,
		domain:       domain,
		runTimestamp: runTimestamp,
		folderPrefix: folderPrefix,
		log:          logger.ForPipeline("products"),
	}
}

// Name returns the stage name
func (w *ProductWriter) Name() string {
	return "products"
}

// ProcessItem writes one product record. Non-product records pass
// through untouched.
func (w *ProductWriter) ProcessItem(ctx context.Context, it item.Item) (item.Item, error) {
	product, ok := it.(*item.Product)
	if !ok {
		return it, nil
	}

	data, err := MarshalRecord(product)
	if err != nil {
		return nil, errors.NewStorage(w.domain, "failed to serialize product "+product.SKU, err)
	}

	key := objectKey(w.domain, w.runTimestamp, w.folderPrefix, product.SKU, "product.json")
	if err := w.backend.Put(ctx, key, "application/json", data); err != nil {
		return nil, errors.NewStorage(w.domain, "failed to write "+key, err)
	}

	w.log.Info().Str("sku", product.SKU).Str("key", key).Msg("Saved product")
	return product, nil
}

// MarshalRecord serializes a record to JSON with non-ASCII characters
// and HTML-significant characters preserved, not escaped
func MarshalRecord(record any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
