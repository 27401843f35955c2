package scraper

import (
	"context"
	"errors"
	"strings"
)

// Article is the extraction result handed to the save pipeline.
type Article struct {
	Title     string
	Content   string
	WordCount int
}

// Scraper extracts readable article content from a URL.
// Implementations do not retry; the caller owns retry policy.
type Scraper interface {
	Extract(ctx context.Context, url string) (*Article, error)
}

// Extraction failures the pipeline can tell apart. Messages are user-facing;
// handlers return them verbatim.
var (
	ErrTimeout  = errors.New("Request timed out. The site might be slow or unreachable.")
	ErrFailed   = errors.New("Could not extract article content. The page might be dynamic or behind authentication.")
	ErrTooShort = errors.New("Article content too short. This might be a paywall or error page.")
)

const minWordCount = 100

const defaultTitle = "Untitled Article"

// buildArticle validates extracted content and computes the word count.
// Word count is the number of whitespace-delimited tokens; under 100 words
// usually means a paywall or placeholder page.
func buildArticle(title, content string) (*Article, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrFailed
	}

	wordCount := len(strings.Fields(content))
	if wordCount < minWordCount {
		return nil, ErrTooShort
	}

	if strings.TrimSpace(title) == "" {
		title = defaultTitle
	}

	return &Article{
		Title:     title,
		Content:   content,
		WordCount: wordCount,
	}, nil
}

// classifyTransportError maps a failed HTTP round trip onto the scraper
// error taxonomy. Deadline expiry means the scrape timeout elapsed.
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return ErrTimeout
	}
	return ErrFailed
}
