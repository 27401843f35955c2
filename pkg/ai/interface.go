package ai

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Analysis is the relevance result stored alongside a saved article.
type Analysis struct {
	Topics         []string `json:"topics"`
	RelevanceScore float64  `json:"relevanceScore"`
	Reasoning      string   `json:"reasoning"`
}

// Analyzer scores article content against a user's interests and goals.
// Implement this interface to add new providers (Gemini, OpenAI, etc.)
type Analyzer interface {
	Analyze(ctx context.Context, content string, interests []string, goals string) (*Analysis, error)
}

// ProviderType represents the analysis provider
type ProviderType string

const (
	ProviderGemini    ProviderType = "gemini"
	ProviderHeuristic ProviderType = "heuristic"
)

const (
	// maxContentChars bounds the prompt so upstream token limits hold.
	maxContentChars   = 15000
	maxTopics         = 5
	maxTopicChars     = 50
	maxTopicWords     = 2
	maxReasoningChars = 500
)

// truncateContent caps article text before it is sent upstream.
func truncateContent(content string) string {
	return truncateRunes(content, maxContentChars)
}

// truncateRunes cuts a string to at most max bytes without splitting a
// multi-byte rune at the boundary.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// sanitize enforces the output contract regardless of what the provider
// returned: score clamped to [0,1] (forced to 0 when the user has no
// preference signal), at most 5 topics of at most 2 words / 50 chars each,
// reasoning capped at 500 chars.
func sanitize(a *Analysis, hasPreferences bool) *Analysis {
	if a == nil {
		a = &Analysis{}
	}

	if !hasPreferences || a.RelevanceScore < 0 {
		a.RelevanceScore = 0
	}
	if a.RelevanceScore > 1 {
		a.RelevanceScore = 1
	}

	topics := make([]string, 0, maxTopics)
	for _, topic := range a.Topics {
		topic = strings.TrimSpace(topic)
		if topic == "" || len(strings.Fields(topic)) > maxTopicWords {
			continue
		}
		topic = truncateRunes(topic, maxTopicChars)
		topics = append(topics, topic)
		if len(topics) == maxTopics {
			break
		}
	}
	a.Topics = topics

	a.Reasoning = truncateRunes(a.Reasoning, maxReasoningChars)

	return a
}

func hasPreferences(interests []string, goals string) bool {
	return len(interests) > 0 || strings.TrimSpace(goals) != ""
}
