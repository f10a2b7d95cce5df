package helpers

import (
	"errors"
	"strings"
)

func GetSplitPart(target string, separate string, index int) (string, error) {
	parts := strings.Split(target, separate)
	if index >= len(parts) {
		return "", errors.New("index out of range")
	}
	return parts[index], nil
}

// LastPathSegment returns the final path segment of a URL
func LastPathSegment(url string) string {
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}
