package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GeminiAnalyzer scores articles with the Gemini generateContent API.
type GeminiAnalyzer struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

var _ Analyzer = (*GeminiAnalyzer)(nil)

func NewGeminiAnalyzer(apiKey, model string) *GeminiAnalyzer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiAnalyzer{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://generativelanguage.googleapis.com",
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

func (g *GeminiAnalyzer) Analyze(ctx context.Context, content string, interests []string, goals string) (*Analysis, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("gemini analyzer misconfigured: missing API key")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": buildPrompt(content, interests, goals)}}},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.3,
			"responseMimeType": "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	text, err := extractCandidateText(respBody)
	if err != nil {
		return nil, err
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("parse analysis JSON: %w", err)
	}

	if analysis.RelevanceScore < 0 || analysis.RelevanceScore > 1 {
		return nil, fmt.Errorf("relevance score %f out of range", analysis.RelevanceScore)
	}

	return &analysis, nil
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func extractCandidateText(respBody []byte) (string, error) {
	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no analysis returned")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(content string, interests []string, goals string) string {
	truncated := truncateContent(content)

	schema := `Respond with JSON only, matching this shape:
{"topics": ["..."], "relevanceScore": 0.0, "reasoning": "..."}`

	if hasPreferences(interests, goals) {
		interestList := strings.Join(interests, ", ")
		if interestList == "" {
			interestList = "None"
		}
		goalText := goals
		if strings.TrimSpace(goalText) == "" {
			goalText = "None"
		}
		return fmt.Sprintf(`Analyze this article and extract 3-5 key topics. Each topic MUST be concise, using only 1-2 words maximum.
Calculate how relevant this article is to the user based on their interests and goals.

User's Interests: %s
User's Goals: %s

Article Content:
%s

Topic Guidelines:
- Use ONLY 1-2 words per topic (e.g., "React", "Machine Learning", "TypeScript", "API Design")
- Be objective and specific
- Avoid lengthy phrases or full sentences

Relevance Score Guidelines:
- 0.8-1.0: Highly relevant, directly related to interests
- 0.5-0.79: Moderately relevant, tangentially related
- 0.0-0.49: Less relevant, little connection

Reasoning: brief explanation of relevance, 1-2 sentences, 500 characters maximum.

%s`, interestList, goalText, truncated, schema)
	}

	return fmt.Sprintf(`Analyze this article and extract 3-5 key topics. Each topic MUST be concise, using only 1-2 words maximum.
Set relevanceScore to 0 since the user hasn't specified interests yet.

Article Content:
%s

Topic Guidelines:
- Use ONLY 1-2 words per topic (e.g., "React", "Machine Learning", "TypeScript", "API Design")
- Be objective and specific
- Avoid lengthy phrases or full sentences

%s`, truncated, schema)
}
