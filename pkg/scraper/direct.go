package scraper

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DirectScraper fetches the page itself and pulls readable text out of the
// HTML. Useful when no reader API key is configured; markdown quality is
// lower than the Jina provider but the contract is the same.
type DirectScraper struct {
	timeout    time.Duration
	httpClient *http.Client
}

var _ Scraper = (*DirectScraper)(nil)

func NewDirectScraper(timeout time.Duration) *DirectScraper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DirectScraper{
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Boilerplate elements stripped before extracting body text.
var strippedSelectors = []string{"script", "style", "noscript", "nav", "header", "footer", "aside", "form"}

func (s *DirectScraper) Extract(ctx context.Context, url string) (*Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ErrFailed
	}
	req.Header.Set("User-Agent", "laterstack/1.0 (+article reader)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[Scraper] direct fetch failed for %s: %v", url, err)
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Scraper] direct fetch returned %s for %s", resp.Status, url)
		return nil, ErrFailed
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, ErrFailed
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		title = strings.TrimSpace(og)
	}

	for _, sel := range strippedSelectors {
		doc.Find(sel).Remove()
	}

	// Prefer <article> when the page marks one up, fall back to full body
	container := doc.Find("article").First()
	if container.Length() == 0 {
		container = doc.Find("body").First()
	}

	content := strings.Join(strings.Fields(container.Text()), " ")

	return buildArticle(title, content)
}
