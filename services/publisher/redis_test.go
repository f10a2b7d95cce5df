package publisher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()
	pub := NewRedisPublisher(ctx, "localhost:6379", 0, "test_products", 10)
	defer pub.Close()

	if err := pub.client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	err := pub.Publish("aligro", []byte(`{"sku":"123"}`))
	assert.NoError(t, err)

	entries, err := pub.client.XRange(ctx, "test_products", "-", "+").Result()
	assert.NoError(t, err)
	assert.NotEmpty(t, entries)

	last := entries[len(entries)-1]
	assert.Equal(t, `{"sku":"123"}`, last.Values["aligro"])

	pub.client.Del(ctx, "test_products")
}
