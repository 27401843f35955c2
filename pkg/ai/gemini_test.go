package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractCandidateText(t *testing.T) {
	t.Parallel()

	body := []byte(`{"candidates":[{"content":{"parts":[{"text":"{\"topics\":[\"Go\"],\"relevanceScore\":0.8,\"reasoning\":\"ok\"}"}]}}]}`)
	text, err := extractCandidateText(body)
	if err != nil {
		t.Fatalf("extractCandidateText error: %v", err)
	}
	if !strings.Contains(text, "relevanceScore") {
		t.Fatalf("unexpected text: %s", text)
	}
}

func TestExtractCandidateTextEmpty(t *testing.T) {
	t.Parallel()

	if _, err := extractCandidateText([]byte(`{"candidates":[]}`)); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestAnalyzeReportsBodyReadFailure(t *testing.T) {
	t.Parallel()

	// Advertise more bytes than are sent so reading the body fails mid-stream
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "500")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"candidates":`))
	}))
	defer server.Close()

	g := NewGeminiAnalyzer("key", "")
	g.baseURL = server.URL

	_, err := g.Analyze(context.Background(), "content", []string{"go"}, "")
	if err == nil {
		t.Fatal("expected error for truncated response body")
	}
	if !strings.Contains(err.Error(), "read gemini response") {
		t.Fatalf("expected read failure to be reported as the cause, got %v", err)
	}
}

func TestAnalyzeParsesUpstreamResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"topics\":[\"Go\"],\"relevanceScore\":0.8,\"reasoning\":\"ok\"}"}]}}]}`))
	}))
	defer server.Close()

	g := NewGeminiAnalyzer("key", "")
	g.baseURL = server.URL

	analysis, err := g.Analyze(context.Background(), "content", []string{"go"}, "")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if analysis.RelevanceScore != 0.8 || len(analysis.Topics) != 1 {
		t.Fatalf("unexpected analysis: %+v", analysis)
	}
}

func TestBuildPromptWithoutPreferences(t *testing.T) {
	t.Parallel()

	prompt := buildPrompt("some article text", nil, "")
	if !strings.Contains(prompt, "Set relevanceScore to 0") {
		t.Fatalf("no-preference prompt must pin the score to 0:\n%s", prompt)
	}
}

func TestBuildPromptTruncatesContent(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("w", 40000)
	prompt := buildPrompt(content, []string{"go"}, "learn systems")
	if len(prompt) > maxContentChars+2000 {
		t.Fatalf("prompt not truncated, length %d", len(prompt))
	}
	if !strings.Contains(prompt, "learn systems") {
		t.Fatal("goals missing from prompt")
	}
}
