package scraper

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"
)

// JinaScraper extracts content through the Jina AI Reader API, which returns
// clean markdown that works well for downstream analysis.
type JinaScraper struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

var _ Scraper = (*JinaScraper)(nil)

func NewJinaScraper(baseURL, apiKey string, timeout time.Duration) *JinaScraper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &JinaScraper{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

type jinaResponse struct {
	Data struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"data"`
}

func (s *JinaScraper) Extract(ctx context.Context, url string) (*Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Reader API takes the target URL as the request path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+url, nil)
	if err != nil {
		return nil, ErrFailed
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[Scraper] jina request failed for %s: %v", url, err)
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Scraper] jina returned %s for %s", resp.Status, url)
		return nil, ErrFailed
	}

	var parsed jinaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("[Scraper] jina response decode failed for %s: %v", url, err)
		return nil, ErrFailed
	}

	return buildArticle(parsed.Data.Title, parsed.Data.Content)
}
