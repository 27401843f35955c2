package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

type stubAnalyzer struct {
	analysis *Analysis
	err      error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, content string, interests []string, goals string) (*Analysis, error) {
	return s.analysis, s.err
}

func TestFallbackOnProviderError(t *testing.T) {
	t.Parallel()

	f := NewFallbackAnalyzer(&stubAnalyzer{err: errors.New("quota exhausted")})
	analysis, err := f.Analyze(context.Background(), "golang golang golang concurrency concurrency channels", []string{"go"}, "")
	if err != nil {
		t.Fatalf("fallback analyzer must never fail, got %v", err)
	}

	if analysis.RelevanceScore != 0 {
		t.Fatalf("fallback score must be 0, got %f", analysis.RelevanceScore)
	}
	if len(analysis.Topics) > 5 {
		t.Fatalf("expected at most 5 topics, got %d", len(analysis.Topics))
	}
	if analysis.Reasoning != fallbackReasoning {
		t.Fatalf("unexpected reasoning: %s", analysis.Reasoning)
	}
}

func TestFallbackWithNilProvider(t *testing.T) {
	t.Parallel()

	f := NewFallbackAnalyzer(nil)
	analysis, err := f.Analyze(context.Background(), "distributed systems consensus algorithms raft leader election", nil, "")
	if err != nil {
		t.Fatalf("fallback analyzer must never fail, got %v", err)
	}
	if analysis.RelevanceScore != 0 {
		t.Fatalf("expected score 0, got %f", analysis.RelevanceScore)
	}
}

func TestHeuristicAnalysis(t *testing.T) {
	t.Parallel()

	content := "kernel kernel kernel scheduler scheduler memory memory paging threads the and of it"
	analysis := HeuristicAnalysis(content)

	if len(analysis.Topics) == 0 {
		t.Fatal("expected topics from frequency heuristic")
	}
	if analysis.Topics[0] != "Kernel" {
		t.Fatalf("expected most frequent word first, got %s", analysis.Topics[0])
	}
	for _, topic := range analysis.Topics {
		if topic[:1] != strings.ToUpper(topic[:1]) {
			t.Fatalf("topic not capitalized: %s", topic)
		}
		if len(topic) <= 4 {
			t.Fatalf("short token leaked into topics: %s", topic)
		}
	}
}

func TestHeuristicDeterministic(t *testing.T) {
	t.Parallel()

	content := "alpha alpha bravo bravo charlie charlie delta delta echoes echoes"
	first := HeuristicAnalysis(content)
	second := HeuristicAnalysis(content)

	if len(first.Topics) != len(second.Topics) {
		t.Fatalf("topic counts differ: %d vs %d", len(first.Topics), len(second.Topics))
	}
	for i := range first.Topics {
		if first.Topics[i] != second.Topics[i] {
			t.Fatalf("heuristic not deterministic at %d: %s vs %s", i, first.Topics[i], second.Topics[i])
		}
	}
}

func TestSanitizeClampsScore(t *testing.T) {
	t.Parallel()

	got := sanitize(&Analysis{RelevanceScore: 3.7}, true)
	if got.RelevanceScore != 1 {
		t.Fatalf("expected clamp to 1, got %f", got.RelevanceScore)
	}

	got = sanitize(&Analysis{RelevanceScore: -0.4}, true)
	if got.RelevanceScore != 0 {
		t.Fatalf("expected clamp to 0, got %f", got.RelevanceScore)
	}
}

func TestSanitizeZeroScoreWithoutPreferences(t *testing.T) {
	t.Parallel()

	got := sanitize(&Analysis{RelevanceScore: 0.9, Topics: []string{"Databases"}}, false)
	if got.RelevanceScore != 0 {
		t.Fatalf("no preference signal must force score 0, got %f", got.RelevanceScore)
	}
	if len(got.Topics) != 1 {
		t.Fatalf("topics should survive, got %v", got.Topics)
	}
}

func TestSanitizeTopicConstraints(t *testing.T) {
	t.Parallel()

	got := sanitize(&Analysis{
		Topics: []string{
			"Go", "Machine Learning", "a topic with too many words", "  ",
			strings.Repeat("x", 80), "Databases", "Caching", "Testing",
		},
		RelevanceScore: 0.5,
	}, true)

	if len(got.Topics) > 5 {
		t.Fatalf("expected at most 5 topics, got %d", len(got.Topics))
	}
	for _, topic := range got.Topics {
		if len(strings.Fields(topic)) > 2 {
			t.Fatalf("topic exceeds 2 words: %q", topic)
		}
		if len(topic) > 50 {
			t.Fatalf("topic exceeds 50 chars: %q", topic)
		}
	}
}

func TestSanitizeTruncatesReasoning(t *testing.T) {
	t.Parallel()

	got := sanitize(&Analysis{Reasoning: strings.Repeat("r", 900), RelevanceScore: 0.2}, true)
	if len(got.Reasoning) != 500 {
		t.Fatalf("expected reasoning truncated to 500, got %d", len(got.Reasoning))
	}
}

func TestSanitizedProviderResult(t *testing.T) {
	t.Parallel()

	f := NewFallbackAnalyzer(&stubAnalyzer{analysis: &Analysis{
		Topics:         []string{"Compilers", "an overly long topic name"},
		RelevanceScore: 1.8,
		Reasoning:      "relevant",
	}})

	analysis, err := f.Analyze(context.Background(), "content", []string{"compilers"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.RelevanceScore != 1 {
		t.Fatalf("expected clamped score 1, got %f", analysis.RelevanceScore)
	}
	if len(analysis.Topics) != 1 || analysis.Topics[0] != "Compilers" {
		t.Fatalf("expected only the valid topic, got %v", analysis.Topics)
	}
}

func TestTruncateContent(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 20000)
	if got := truncateContent(long); len(got) != maxContentChars {
		t.Fatalf("expected %d chars, got %d", maxContentChars, len(got))
	}
	if got := truncateContent("short"); got != "short" {
		t.Fatalf("short content must pass through, got %q", got)
	}
}

func TestTruncationKeepsRuneBoundaries(t *testing.T) {
	t.Parallel()

	// Leading ASCII byte puts every following 2-byte rune on an odd
	// offset, so the byte cap lands mid-rune
	content := "a" + strings.Repeat("é", maxContentChars)
	got := truncateContent(content)
	if len(got) > maxContentChars {
		t.Fatalf("expected at most %d bytes, got %d", maxContentChars, len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncated content contains a split rune")
	}

	multibyteTopic := strings.Repeat("日", 30) // 90 bytes
	sanitized := sanitize(&Analysis{Topics: []string{multibyteTopic}, RelevanceScore: 0.5}, true)
	if len(sanitized.Topics) != 1 {
		t.Fatalf("expected the topic to survive, got %v", sanitized.Topics)
	}
	if !utf8.ValidString(sanitized.Topics[0]) {
		t.Fatalf("truncated topic contains a split rune: %q", sanitized.Topics[0])
	}
	if len(sanitized.Topics[0]) > maxTopicChars {
		t.Fatalf("topic exceeds %d bytes: %d", maxTopicChars, len(sanitized.Topics[0]))
	}

	sanitized = sanitize(&Analysis{Reasoning: strings.Repeat("ü", 600), RelevanceScore: 0.5}, true)
	if !utf8.ValidString(sanitized.Reasoning) {
		t.Fatal("truncated reasoning contains a split rune")
	}
	if len(sanitized.Reasoning) > maxReasoningChars {
		t.Fatalf("reasoning exceeds %d bytes: %d", maxReasoningChars, len(sanitized.Reasoning))
	}
}
