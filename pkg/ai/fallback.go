package ai

import (
	"context"
	"log"
	"regexp"
	"sort"
	"strings"
)

const fallbackReasoning = "AI analysis unavailable. Topics extracted from word frequency."

// FallbackAnalyzer wraps a provider so that analysis can never fail: on any
// provider error the result comes from a local word-frequency heuristic with
// relevanceScore 0. Scoring-service outages must never block saving.
type FallbackAnalyzer struct {
	provider Analyzer
}

func NewFallbackAnalyzer(provider Analyzer) *FallbackAnalyzer {
	return &FallbackAnalyzer{provider: provider}
}

// Analyze returns a sanitized provider result or the heuristic fallback.
// The error return is always nil; it exists to satisfy the Analyzer interface.
func (f *FallbackAnalyzer) Analyze(ctx context.Context, content string, interests []string, goals string) (*Analysis, error) {
	prefs := hasPreferences(interests, goals)

	if f.provider != nil {
		analysis, err := f.provider.Analyze(ctx, content, interests, goals)
		if err == nil {
			return sanitize(analysis, prefs), nil
		}
		log.Printf("[AI] analysis failed, using heuristic fallback: %v", err)
	}

	return HeuristicAnalysis(content), nil
}

var nonWordRunes = regexp.MustCompile(`[^\w\s]`)

// HeuristicAnalysis extracts topics without AI: tokenize, drop short tokens,
// take the 5 most frequent words capitalized. Deterministic for a given input.
func HeuristicAnalysis(content string) *Analysis {
	cleaned := nonWordRunes.ReplaceAllString(strings.ToLower(content), " ")

	freq := make(map[string]int)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 4 {
			continue
		}
		freq[word]++
	}

	words := make([]string, 0, len(freq))
	for word := range freq {
		words = append(words, word)
	}
	// Ties broken alphabetically so the result is stable
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > maxTopics {
		words = words[:maxTopics]
	}

	topics := make([]string, len(words))
	for i, word := range words {
		topics[i] = strings.ToUpper(word[:1]) + word[1:]
	}

	return &Analysis{
		Topics:         topics,
		RelevanceScore: 0,
		Reasoning:      fallbackReasoning,
	}
}
