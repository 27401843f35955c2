// Package client is the Go client for the LaterStack API. It pairs a plain
// HTTP client with an optimistic submission tracker so callers can fire off
// several saves at once and keep a truthful merged view while they resolve.
package client

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

// Item mirrors a persisted saved article as returned by the API.
type Item struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	URL            string     `json:"url"`
	Title          string     `json:"title"`
	EstimatedTime  int        `json:"estimated_time"`
	Topics         []string   `json:"topics"`
	RelevanceScore float64    `json:"relevance_score"`
	Reasoning      string     `json:"reasoning"`
	SavedAt        time.Time  `json:"saved_at"`
	ReadAt         *time.Time `json:"read_at"`
	ArchivedAt     *time.Time `json:"archived_at"`
}

// FilterCounts holds per-filter badge counts.
type FilterCounts struct {
	All       int64 `json:"all"`
	Unread    int64 `json:"unread"`
	Read      int64 `json:"read"`
	Archived  int64 `json:"archived"`
	QuickRead int64 `json:"quick_read"`
}

// ListResult is a filtered listing plus counts.
type ListResult struct {
	Items  []Item       `json:"items"`
	Counts FilterCounts `json:"counts"`
}

// APIError is a structured error response from the server.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsDuplicate reports whether the error is a terminal duplicate-article
// rejection, which is not retryable from the same input.
func (e *APIError) IsDuplicate() bool {
	return e.Code == "duplicate"
}

// Client calls the LaterStack HTTP API with a bearer session token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// SaveArticle submits one URL through the save pipeline.
func (c *Client) SaveArticle(ctx context.Context, url string) (*Item, error) {
	var resp struct {
		Item *Item `json:"item"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/articles", map[string]string{"url": url}, &resp); err != nil {
		return nil, err
	}
	return resp.Item, nil
}

// ListArticles fetches the triage view for a filter
// (all, unread, read, archived, quick-read).
func (c *Client) ListArticles(ctx context.Context, filter string) (*ListResult, error) {
	path := "/api/articles"
	if filter != "" {
		path += "?filter=" + filter
	}
	var result ListResult
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) MarkRead(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodPatch, "/api/articles/"+itemID+"/read", nil, nil)
}

func (c *Client) MarkUnread(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodPatch, "/api/articles/"+itemID+"/unread", nil, nil)
}

func (c *Client) Archive(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodPatch, "/api/articles/"+itemID+"/archive", nil, nil)
}

func (c *Client) Unarchive(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodPatch, "/api/articles/"+itemID+"/unarchive", nil, nil)
}

// UpdateProfile stores reading preferences. Interests are comma-separated.
func (c *Client) UpdateProfile(ctx context.Context, interests, goals string, readingSpeed int) error {
	payload := map[string]interface{}{
		"interests":     interests,
		"goals":         goals,
		"reading_speed": readingSpeed,
	}
	return c.do(ctx, http.MethodPut, "/api/profile", payload, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: "request failed"}
		var parsed struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error != "" {
			apiErr.Message = parsed.Error
			apiErr.Code = parsed.Code
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
