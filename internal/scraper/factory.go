// Package scraper resolves scraper identifiers to site scrapers.
package scraper

import (
	"fmt"

	"storescrapers/catalogworker/config"
	"storescrapers/catalogworker/internal/engine"
	"storescrapers/catalogworker/internal/scraper/aligro"
)

// Create returns the scraper registered under name
func Create(name string, cfg *config.Config) (engine.Scraper, error) {
	switch name {
	case "aligro":
		return aligro.New(cfg), nil
	default:
		return nil, fmt.Errorf("unknown scraper %q", name)
	}
}

// Names returns the known scraper identifiers
func Names() []string {
	return []string{"aligro"}
}
