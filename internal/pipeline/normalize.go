package pipeline

import (
	"context"
	"html"

	"golang.org/x/text/unicode/norm"

	"storescrapers/catalogworker/internal/item"
)

// Normalizer decodes HTML entities and applies NFKD normalization to
// the textual fields of every record. It runs exactly once per record,
// after extraction and before persistence, and is idempotent.
type Normalizer struct{}

// NewNormalizer creates a new normalizer stage
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Name returns the stage name
func (n *Normalizer) Name() string {
	return "normalize"
}

// ProcessItem normalizes the top-level textual fields of the record.
// Non-text and null fields pass through untouched.
func (n *Normalizer) ProcessItem(_ context.Context, it item.Item) (item.Item, error) {
	switch record := it.(type) {
	case *item.Product:
		record.SKU = NormalizeText(record.SKU)
		record.DateSaleStart = normalizePtr(record.DateSaleStart)
		record.DateSaleEnd = normalizePtr(record.DateSaleEnd)
		record.ProductCategory = NormalizeText(record.ProductCategory)
		record.Subcategory1 = normalizePtr(record.Subcategory1)
		record.Subcategory2 = normalizePtr(record.Subcategory2)
		record.ProductName = NormalizeText(record.ProductName)
		record.ProductURL = NormalizeText(record.ProductURL)
		record.PackageSize = normalizePtr(record.PackageSize)
		record.AvailableLocations = normalizePtr(record.AvailableLocations)
	case *item.ProductImage:
		record.ImageURL = NormalizeText(record.ImageURL)
		record.ImageID = NormalizeText(record.ImageID)
		record.ImageType = NormalizeText(record.ImageType)
		record.SKU = NormalizeText(record.SKU)
		record.ProductName = NormalizeText(record.ProductName)
	}
	return it, nil
}

// NormalizeText decodes HTML entities, then applies Unicode NFKD
// normalization
func NormalizeText(s string) string {
	return norm.NFKD.String(html.UnescapeString(s))
}

func normalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	normalized := NormalizeText(*s)
	return &normalized
}
