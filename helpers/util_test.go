package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSplitPart(t *testing.T) {
	part, err := GetSplitPart("a/b/c", "/", 1)
	assert.NoError(t, err)
	assert.Equal(t, "b", part)

	_, err = GetSplitPart("a/b", "/", 5)
	assert.Error(t, err)
}

func TestLastPathSegment(t *testing.T) {
	assert.Equal(t, "123_main.jpg", LastPathSegment("https://cdn.aligro.ch/img/123_main.jpg"))
	assert.Equal(t, "pic.png", LastPathSegment("/a/b/pic.png"))
	assert.Equal(t, "noslash", LastPathSegment("noslash"))
}
