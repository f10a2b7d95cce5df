package aligro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storescrapers/catalogworker/config"
	"storescrapers/catalogworker/internal/engine"
)

func testScraper() *Scraper {
	return New(&config.Config{
		AligroStartURL: "https://www.aligro.ch/de/",
		AligroCategories: []string{
			"Frischprodukte",
			"Wein und Getränke",
			"Allgemeine Lebensmittel",
			"Non-Food",
		},
	})
}

func TestStartRequests(t *testing.T) {
	s := testScraper()

	requests := s.StartRequests()
	assert.Len(t, requests, 1)
	assert.Equal(t, "https://www.aligro.ch/de/", requests[0].URL)
	assert.NotNil(t, requests[0].Parse)
}

func TestParseNavigation(t *testing.T) {
	s := testScraper()

	html := `<html><body><ul class="navbar-nav">
		<li class="dropdown">
			<a class="dropdown-toggle">  Frischprodukte  </a>
			<ul class="dropdown-menu">
				<li><a href="https://www.aligro.ch/de/frisch/fleisch">Fleisch</a></li>
				<li><a href="https://www.aligro.ch/de/frisch/fisch">Fisch</a></li>
			</ul>
		</li>
		<li class="dropdown">
			<a class="dropdown-toggle">Tierbedarf</a>
			<ul class="dropdown-menu">
				<li><a href="https://www.aligro.ch/de/tierbedarf/futter">Futter</a></li>
			</ul>
		</li>
	</ul></body></html>`

	result, err := s.parseNavigation(&engine.Response{URL: "https://www.aligro.ch/de/", Body: []byte(html)})
	assert.NoError(t, err)
	assert.Empty(t, result.Items)

	// Only the allow-listed category's sub-categories are emitted
	assert.Len(t, result.Requests, 2)
	assert.Equal(t, "https://www.aligro.ch/de/frisch/fleisch", result.Requests[0].URL)
	assert.Equal(t, "https://www.aligro.ch/de/frisch/fisch", result.Requests[1].URL)
}

func TestParseNavigationNoMatches(t *testing.T) {
	s := testScraper()

	html := `<html><body><ul class="navbar-nav">
		<li class="dropdown">
			<a class="dropdown-toggle">Aktionen</a>
			<ul class="dropdown-menu"><li><a href="/de/aktionen">Alle</a></li></ul>
		</li>
	</ul></body></html>`

	result, err := s.parseNavigation(&engine.Response{Body: []byte(html)})
	assert.NoError(t, err)
	assert.Empty(t, result.Requests, "categories outside the allow-list are skipped silently")
}

func TestNormalizeSpace(t *testing.T) {
	assert.Equal(t, "Wein und Getränke", normalizeSpace("  Wein \n und \t Getränke "))
	assert.Equal(t, "", normalizeSpace("   "))
}
