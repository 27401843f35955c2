package scraper

import (
	"log"

	"laterstack-backend/pkg/config"
)

// New builds the configured extraction provider.
func New(cfg *config.Config) Scraper {
	switch cfg.ScraperProvider {
	case "direct":
		return NewDirectScraper(cfg.ScrapeTimeout)
	case "jina":
		return NewJinaScraper(cfg.JinaReaderURL, cfg.JinaAPIKey, cfg.ScrapeTimeout)
	default:
		log.Printf("[Scraper] unknown provider %q, using jina", cfg.ScraperProvider)
		return NewJinaScraper(cfg.JinaReaderURL, cfg.JinaAPIKey, cfg.ScrapeTimeout)
	}
}
