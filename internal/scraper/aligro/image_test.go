package aligro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storescrapers/catalogworker/internal/engine"
	"storescrapers/catalogworker/internal/item"
	"storescrapers/catalogworker/pkg/errors"
)

func TestParseImage(t *testing.T) {
	s := testScraper()

	payload := []byte{0xff, 0xd8, 0xff, 0xe0}
	result, err := s.parseImage(&engine.Response{
		URL:  "https://cdn.aligro.ch/img/123_main.jpg",
		Body: payload,
	}, "123", "ACME Juice")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	image := result.Items[0].(*item.ProductImage)
	assert.Equal(t, "https://cdn.aligro.ch/img/123_main.jpg", image.ImageURL)
	assert.Equal(t, "123_main", image.ImageID)
	assert.Equal(t, "jpg", image.ImageType)
	assert.Equal(t, "123", image.SKU)
	assert.Equal(t, "ACME Juice", image.ProductName)
	assert.Equal(t, payload, image.Content)
}

func TestParseImagePNG(t *testing.T) {
	s := testScraper()

	result, err := s.parseImage(&engine.Response{URL: "https://cdn.aligro.ch/a/b/pic.png"}, "1", "P")
	require.NoError(t, err)
	image := result.Items[0].(*item.ProductImage)
	assert.Equal(t, "pic", image.ImageID)
	assert.Equal(t, "png", image.ImageType)
}

func TestParseImageUnrecognizedType(t *testing.T) {
	s := testScraper()

	result, err := s.parseImage(&engine.Response{URL: "https://cdn.aligro.ch/img/123_main.webp"}, "123", "ACME Juice")
	assert.Nil(t, result)
	require.Error(t, err)

	var scrapeErr *errors.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, errors.ErrorTypeImage, scrapeErr.Type)
}

func TestParseImageUppercaseExtensionRejected(t *testing.T) {
	s := testScraper()

	// The extension match is case-sensitive
	_, err := s.parseImage(&engine.Response{URL: "https://cdn.aligro.ch/img/123.JPG"}, "123", "X")
	assert.Error(t, err)
}
