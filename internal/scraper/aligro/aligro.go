// Package aligro scrapes the Aligro grocery catalog: category
// navigation, paginated product listings and product images.
package aligro

import (
	"bytes"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"storescrapers/catalogworker/config"
	"storescrapers/catalogworker/internal/engine"
	"storescrapers/catalogworker/logger"
	"storescrapers/catalogworker/pkg/errors"
)

// Scraper implements engine.Scraper for the Aligro site
type Scraper struct {
	startURL     string
	categories   []string
	folderPrefix string
	log          *logger.Logger
}

// New creates a new Aligro scraper from the configuration
func New(cfg *config.Config) *Scraper {
	return &Scraper{
		startURL:     cfg.AligroStartURL,
		categories:   cfg.AligroCategories,
		folderPrefix: cfg.FolderPrefix,
		log:          logger.ForScraper("aligro"),
	}
}

// Name returns the scraper identifier
func (s *Scraper) Name() string {
	return "aligro"
}

// Domain returns the persistence key root
func (s *Scraper) Domain() string {
	return "aligro"
}

// FolderPrefix returns the optional per-run path prefix
func (s *Scraper) FolderPrefix() string {
	return s.folderPrefix
}

// StartRequests returns the initial fetch for the root navigation page
func (s *Scraper) StartRequests() []*engine.Request {
	return []*engine.Request{{
		URL:   s.startURL,
		Parse: s.parseNavigation,
	}}
}

// parseNavigation walks the top-level navigation menu and emits one
// landing-page request per sub-category of every allow-listed category.
// Categories outside the allow-list are silently skipped.
func (s *Scraper) parseNavigation(resp *engine.Response) (*engine.ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, errors.NewParsing(s.Name(), "failed to parse navigation page", err)
	}

	result := &engine.ParseResult{}
	doc.Find("ul.navbar-nav li.dropdown").Each(func(_ int, menu *goquery.Selection) {
		categoryName := normalizeSpace(menu.Find("a.dropdown-toggle").First().Text())
		if !slices.Contains(s.categories, categoryName) {
			return
		}

		menu.Find("ul.dropdown-menu li").Each(func(_ int, sub *goquery.Selection) {
			subCategoryURL, _ := sub.Find("a").First().Attr("href")
			if subCategoryURL == "" {
				return
			}
			s.log.Info().Str("url", subCategoryURL).Msg("Iterating over sub-category")
			result.Requests = append(result.Requests, &engine.Request{
				URL:   subCategoryURL,
				Parse: s.parseLanding,
			})
		})
	})
	return result, nil
}

// normalizeSpace collapses runs of whitespace to single spaces and
// trims the ends, like XPath normalize-space()
func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
