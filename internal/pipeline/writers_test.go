package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storescrapers/catalogworker/internal/item"
)

// memoryBackend records puts for assertions
type memoryBackend struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *memoryBackend) Put(_ context.Context, key string, contentType string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = body
	m.types[key] = contentType
	return nil
}

func (m *memoryBackend) Name() string {
	return "memory"
}

func TestProductWriterPath(t *testing.T) {
	backend := newMemoryBackend()
	writer := NewProductWriter(backend, "aligro", "01012024_1200", "")

	product := &item.Product{SKU: "123", ProductName: "Juice", ImageURLs: []string{""}}
	out, err := writer.ProcessItem(context.Background(), product)
	require.NoError(t, err)
	assert.Same(t, product, out)

	body, ok := backend.objects["aligro/01012024_1200/123/product.json"]
	require.True(t, ok, "product persisted under the expected key")
	assert.Equal(t, "application/json", backend.types["aligro/01012024_1200/123/product.json"])
	assert.Contains(t, string(body), `"sku":"123"`)
}

func TestProductWriterPrefix(t *testing.T) {
	backend := newMemoryBackend()
	writer := NewProductWriter(backend, "aligro", "01012024_1200", "promo")

	_, err := writer.ProcessItem(context.Background(), &item.Product{SKU: "123"})
	require.NoError(t, err)

	_, ok := backend.objects["aligro/01012024_1200/promo/123/product.json"]
	assert.True(t, ok)
}

func TestProductWriterPreservesNonASCII(t *testing.T) {
	backend := newMemoryBackend()
	writer := NewProductWriter(backend, "aligro", "01012024_1200", "")

	name := "Käse & Brot"
	_, err := writer.ProcessItem(context.Background(), &item.Product{SKU: "9", ProductName: name})
	require.NoError(t, err)

	body := string(backend.objects["aligro/01012024_1200/9/product.json"])
	assert.Contains(t, body, "Käse & Brot", "non-ASCII and ampersands are not escaped")
	assert.NotContains(t, body, `\u`)
}

func TestProductWriterNullFields(t *testing.T) {
	backend := newMemoryBackend()
	writer := NewProductWriter(backend, "aligro", "01012024_1200", "")

	_, err := writer.ProcessItem(context.Background(), &item.Product{SKU: "5"})
	require.NoError(t, err)

	body := string(backend.objects["aligro/01012024_1200/5/product.json"])
	assert.Contains(t, body, `"date_sale_start":null`)
	assert.Contains(t, body, `"price_with_vat":null`)
	assert.NotContains(t, body, "price_per_unit")
}

func TestProductWriterPassesThroughImages(t *testing.T) {
	backend := newMemoryBackend()
	writer := NewProductWriter(backend, "aligro", "01012024_1200", "")

	image := &item.ProductImage{SKU: "123", ImageID: "a", ImageType: "jpg"}
	out, err := writer.ProcessItem(context.Background(), image)
	require.NoError(t, err)
	assert.Same(t, image, out)
	assert.Empty(t, backend.objects)
}

func TestImageWriter(t *testing.T) {
	backend := newMemoryBackend()
	writer := NewImageWriter(backend, "aligro", "01012024_1200", "")

	payload := []byte{0xff, 0xd8}
	image := &item.ProductImage{
		SKU:       "123",
		ImageID:   "123_main",
		ImageType: "jpg",
		Content:   payload,
	}

	out, err := writer.ProcessItem(context.Background(), image)
	require.NoError(t, err)

	body, ok := backend.objects["aligro/01012024_1200/123/123_main.jpg"]
	require.True(t, ok)
	assert.Equal(t, payload, body)
	assert.Equal(t, "image/jpeg", backend.types["aligro/01012024_1200/123/123_main.jpg"])

	// The payload is dropped after the write
	assert.Nil(t, out.(*item.ProductImage).Content)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "aligro/01012024_1200/123/product.json",
		objectKey("aligro", "01012024_1200", "", "123", "product.json"))
	assert.Equal(t, "aligro/01012024_1200/promo/123/img.jpg",
		objectKey("aligro", "01012024_1200", "promo", "123", "img.jpg"))
}
