package pipeline

import (
	"context"

	"storescrapers/catalogworker/internal/item"
	"storescrapers/catalogworker/logger"
	"storescrapers/catalogworker/pkg/errors"
	"storescrapers/catalogworker/services/storage"
)

// ImageWriter persists image payloads under
// {domain}/{run_timestamp}[/{prefix}]/{sku}/{image_id}.{image_type}
// and drops the in-memory payload after the write.
type ImageWriter struct {
	backend      storage.Backend
	domain       string
	runTimestamp string
	folderPrefix string
	log          *logger.Logger
}

// NewImageWriter creates a new image persistence stage
func NewImageWriter(backend storage.Backend, domain, runTimestamp, folderPrefix string) *ImageWriter {
	return &ImageWriter{
		backend:      backend,
		domain:       domain,
		runTimestamp: runTimestamp,
		folderPrefix: folderPrefix,
		log:          logger.ForPipeline("images"),
	}
}

// Name returns the stage name
func (w *ImageWriter) Name() string {
	return "images"
}

// ProcessItem writes one image record. Non-image records pass through
// untouched.
func (w *ImageWriter) ProcessItem(ctx context.Context, it item.Item) (item.Item, error) {
	image, ok := it.(*item.ProductImage)
	if !ok {
		return it, nil
	}

	key := objectKey(w.domain, w.runTimestamp, w.folderPrefix, image.SKU, image.ImageID+"."+image.ImageType)
	if err := w.backend.Put(ctx, key, contentTypeFor(image.ImageType), image.Content); err != nil {
		return nil, errors.NewStorage(w.domain, "failed to write "+key, err)
	}

	w.log.Info().Str("sku", image.SKU).Str("key", key).Msg("Saved image")

	// The payload is not retained past the upload
	image.Content = nil
	return image, nil
}

func contentTypeFor(imageType string) string {
	switch imageType {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
