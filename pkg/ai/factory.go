package ai

import (
	"log"

	"laterstack-backend/pkg/config"
)

// New builds the configured analyzer wrapped in the heuristic fallback.
// The returned analyzer never fails.
func New(cfg *config.Config) *FallbackAnalyzer {
	switch ProviderType(cfg.AIProvider) {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			log.Println("[AI] GEMINI_API_KEY not set, analysis will use the heuristic fallback")
			return NewFallbackAnalyzer(nil)
		}
		return NewFallbackAnalyzer(NewGeminiAnalyzer(cfg.GeminiAPIKey, cfg.GeminiModel))
	case ProviderHeuristic:
		return NewFallbackAnalyzer(nil)
	default:
		log.Printf("[AI] unknown provider %q, using heuristic fallback", cfg.AIProvider)
		return NewFallbackAnalyzer(nil)
	}
}
