package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents fetch-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents markup or JSON parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeImage represents image finalization errors
	ErrorTypeImage ErrorType = "image"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeStorage represents storage write errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Scraper string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Scraper, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Scraper, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork:
		return true
	case ErrorTypeStorage:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, scraper, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Scraper: scraper,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(scraper, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, scraper, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(scraper, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, scraper, message, err)
}

// NewImage creates a new image error
func NewImage(scraper, message string, err error) *ScrapeError {
	return New(ErrorTypeImage, scraper, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(scraper string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, scraper, message, nil)
}

// NewStorage creates a new storage error
func NewStorage(scraper, message string, err error) *ScrapeError {
	return New(ErrorTypeStorage, scraper, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
