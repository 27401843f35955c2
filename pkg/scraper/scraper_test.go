package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func wordsOfLength(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

func TestJinaScraperExtract(t *testing.T) {
	t.Parallel()

	content := wordsOfLength(150)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected JSON accept header, got %q", got)
		}
		fmt.Fprintf(w, `{"data":{"title":"A Title","content":%q}}`, content)
	}))
	defer srv.Close()

	s := NewJinaScraper(srv.URL, "", 5*time.Second)
	article, err := s.Extract(context.Background(), "https://example.com/post")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if article.Title != "A Title" {
		t.Fatalf("unexpected title: %s", article.Title)
	}
	if article.WordCount != 150 {
		t.Fatalf("expected word count 150, got %d", article.WordCount)
	}
}

func TestJinaScraperMissingContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"title":"Only Title"}}`)
	}))
	defer srv.Close()

	s := NewJinaScraper(srv.URL, "", 5*time.Second)
	_, err := s.Extract(context.Background(), "https://example.com/post")
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
}

func TestJinaScraperShortContent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":{"title":"T","content":%q}}`, wordsOfLength(40))
	}))
	defer srv.Close()

	s := NewJinaScraper(srv.URL, "", 5*time.Second)
	_, err := s.Extract(context.Background(), "https://example.com/post")
	if !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestJinaScraperUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewJinaScraper(srv.URL, "", 5*time.Second)
	_, err := s.Extract(context.Background(), "https://example.com/post")
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("expected ErrFailed, got %v", err)
	}
}

func TestJinaScraperTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	s := NewJinaScraper(srv.URL, "", 50*time.Millisecond)
	_, err := s.Extract(context.Background(), "https://example.com/post")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestDirectScraperExtract(t *testing.T) {
	t.Parallel()

	page := fmt.Sprintf(`<html><head><title>Page Title</title></head>
		<body>
			<nav>menu items here</nav>
			<script>var tracking = true;</script>
			<article><p>%s</p></article>
			<footer>copyright</footer>
		</body></html>`, wordsOfLength(120))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	s := NewDirectScraper(5 * time.Second)
	article, err := s.Extract(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if article.Title != "Page Title" {
		t.Fatalf("unexpected title: %s", article.Title)
	}
	if article.WordCount != 120 {
		t.Fatalf("expected word count 120, got %d", article.WordCount)
	}
	if strings.Contains(article.Content, "tracking") || strings.Contains(article.Content, "menu") {
		t.Fatalf("boilerplate leaked into content: %s", article.Content[:80])
	}
}

func TestBuildArticleDefaultTitle(t *testing.T) {
	t.Parallel()

	article, err := buildArticle("  ", wordsOfLength(100))
	if err != nil {
		t.Fatalf("buildArticle returned error: %v", err)
	}
	if article.Title != "Untitled Article" {
		t.Fatalf("expected default title, got %q", article.Title)
	}
}

func TestBuildArticleWordCountBoundary(t *testing.T) {
	t.Parallel()

	if _, err := buildArticle("T", wordsOfLength(99)); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort at 99 words, got %v", err)
	}
	article, err := buildArticle("T", wordsOfLength(100))
	if err != nil {
		t.Fatalf("expected 100 words to pass, got %v", err)
	}
	if article.WordCount != 100 {
		t.Fatalf("expected word count 100, got %d", article.WordCount)
	}
}
