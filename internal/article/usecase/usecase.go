package usecase

import (
	"context"
	"errors"

	authdomain "laterstack-backend/internal/auth/domain"
	"laterstack-backend/internal/article/domain"
)

// Errors surfaced to handlers. Messages are user-facing. Extraction errors
// from pkg/scraper pass through unchanged.
var (
	ErrInvalidURL   = errors.New("Please enter a valid URL starting with http:// or https://")
	ErrDuplicate    = errors.New("You've already saved this article!")
	ErrNotFound     = errors.New("Article not found")
	ErrUnauthorized = errors.New("Unauthorized")
)

// UserResolver provisions and returns the caller's account.
// Satisfied by the auth usecase.
type UserResolver interface {
	ResolveUser(ctx context.Context, externalID string) (*authdomain.User, error)
}

// ListResult is the filtered triage view plus badge counts.
type ListResult struct {
	Items  []*domain.SavedItem `json:"items"`
	Counts domain.FilterCounts `json:"counts"`
	Groups *GroupedItems       `json:"groups,omitempty"`
}

// GroupedItems splits the "all" view into status sections.
type GroupedItems struct {
	Unread   []*domain.SavedItem `json:"unread"`
	Read     []*domain.SavedItem `json:"read"`
	Archived []*domain.SavedItem `json:"archived"`
}

// ArticleUsecase owns the save pipeline, the read/archive state machine,
// and the triage listing.
type ArticleUsecase interface {
	// SaveArticle runs the full pipeline for one URL: validate, provision,
	// duplicate-check, extract, estimate, analyze, persist. Exactly one row
	// is written on success, none on any failure.
	SaveArticle(ctx context.Context, externalID, rawURL string) (*domain.SavedItem, error)

	MarkRead(ctx context.Context, externalID, itemID string) error
	MarkUnread(ctx context.Context, externalID, itemID string) error
	Archive(ctx context.Context, externalID, itemID string) error
	Unarchive(ctx context.Context, externalID, itemID string) error

	List(ctx context.Context, externalID string, filter domain.Filter) (*ListResult, error)
}
