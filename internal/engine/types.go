package engine

import (
	"storescrapers/catalogworker/internal/item"
)

// Request describes one fetch to dispatch. The parse callback receives
// the response and returns records plus any follow-up requests.
type Request struct {
	URL     string
	Headers map[string]string
	Parse   ParseFunc
}

// Response is a fetched body handed to a parse callback. URL is the
// final URL after redirects.
type Response struct {
	URL  string
	Body []byte
}

// ParseResult carries the outputs of one parse callback
type ParseResult struct {
	Items    []item.Item
	Requests []*Request
}

// ParseFunc transforms one response into records and further requests
type ParseFunc func(resp *Response) (*ParseResult, error)

// Scraper is implemented by each site scraper
type Scraper interface {
	// Name returns the scraper identifier used for invocation
	Name() string

	// Domain returns the site domain used as the persistence key root
	Domain() string

	// FolderPrefix returns an optional per-run path prefix, or ""
	FolderPrefix() string

	// StartRequests returns the initial fetch requests for a run
	StartRequests() []*Request
}
