package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSaveArticle(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/articles" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("unexpected auth header: %q", got)
		}
		var body struct {
			URL string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL != "https://example.com/post" {
			t.Errorf("unexpected body: %+v err=%v", body, err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"item":{"id":"item-1","url":"https://example.com/post","estimated_time":4}}`))
	}))
	defer server.Close()

	c := New(server.URL, "token-1")
	item, err := c.SaveArticle(context.Background(), "https://example.com/post")
	if err != nil {
		t.Fatalf("SaveArticle error: %v", err)
	}
	if item.ID != "item-1" || item.EstimatedTime != 4 {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestClientDuplicateErrorEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"error":"You've already saved this article!","code":"duplicate"}`))
	}))
	defer server.Close()

	c := New(server.URL, "token-1")
	_, err := c.SaveArticle(context.Background(), "https://example.com/post")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", apiErr.Status)
	}
	if !apiErr.IsDuplicate() {
		t.Fatalf("expected duplicate code, got %q", apiErr.Code)
	}
	if apiErr.Error() != "You've already saved this article!" {
		t.Fatalf("unexpected message: %q", apiErr.Error())
	}
}

func TestClientMalformedErrorBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer server.Close()

	c := New(server.URL, "token-1")
	_, err := c.SaveArticle(context.Background(), "https://example.com/post")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "request failed" {
		t.Fatalf("expected generic message for unparseable bodies, got %q", apiErr.Message)
	}
}

func TestClientListArticles(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter"); got != "unread" {
			t.Errorf("expected filter=unread, got %q", got)
		}
		w.Write([]byte(`{"items":[{"id":"a"},{"id":"b"}],"counts":{"all":5,"unread":2}}`))
	}))
	defer server.Close()

	c := New(server.URL, "token-1")
	result, err := c.ListArticles(context.Background(), "unread")
	if err != nil {
		t.Fatalf("ListArticles error: %v", err)
	}
	if len(result.Items) != 2 || result.Counts.All != 5 || result.Counts.Unread != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestClientTransitions(t *testing.T) {
	t.Parallel()

	var gotPath, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	c := New(server.URL, "token-1")
	if err := c.Archive(context.Background(), "item-9"); err != nil {
		t.Fatalf("Archive error: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/articles/item-9/archive" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}
