package usecase

import (
	"context"
	"errors"
	"log"
	"math"
	"net/url"
	"sync"
	"time"

	"laterstack-backend/internal/article/domain"
	"laterstack-backend/internal/article/repository"
	authdomain "laterstack-backend/internal/auth/domain"
	"laterstack-backend/pkg/ai"
	"laterstack-backend/pkg/scraper"
)

const listLimit = 50

// articleUsecase implements ArticleUsecase
type articleUsecase struct {
	itemRepo repository.ItemRepository
	users    UserResolver
	scraper  scraper.Scraper
	analyzer ai.Analyzer
}

// NewArticleUsecase creates a new instance of articleUsecase
func NewArticleUsecase(itemRepo repository.ItemRepository, users UserResolver, scr scraper.Scraper, analyzer ai.Analyzer) ArticleUsecase {
	return &articleUsecase{
		itemRepo: itemRepo,
		users:    users,
		scraper:  scr,
		analyzer: analyzer,
	}
}

func (u *articleUsecase) SaveArticle(ctx context.Context, externalID, rawURL string) (*domain.SavedItem, error) {
	validatedURL, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}

	user, err := u.users.ResolveUser(ctx, externalID)
	if err != nil {
		return nil, err
	}

	// Advisory duplicate check; the unique index is the authoritative guard
	existing, err := u.itemRepo.FindByUserAndURL(user.ID, validatedURL)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicate
	}

	article, err := u.scraper.Extract(ctx, validatedURL)
	if err != nil {
		return nil, err
	}

	estimatedTime := estimateReadingTime(article.WordCount, user.ReadingSpeed)

	analysis, err := u.analyzer.Analyze(ctx, article.Content, user.Interests, user.Goals)
	if err != nil {
		// The fallback analyzer never fails; keep saving regardless
		log.Printf("[Article] analyzer returned error, using heuristic: %v", err)
		analysis = ai.HeuristicAnalysis(article.Content)
	}

	item := &domain.SavedItem{
		UserID:         user.ID,
		URL:            validatedURL,
		Title:          article.Title,
		Content:        article.Content,
		EstimatedTime:  estimatedTime,
		Topics:         analysis.Topics,
		RelevanceScore: analysis.RelevanceScore,
		Reasoning:      analysis.Reasoning,
	}

	if err := u.itemRepo.Create(item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Same URL saved concurrently between the check and the write
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return item, nil
}

func (u *articleUsecase) MarkRead(ctx context.Context, externalID, itemID string) error {
	return u.transition(ctx, externalID, itemID, func(item *domain.SavedItem) {
		now := time.Now()
		item.ReadAt = &now
	})
}

func (u *articleUsecase) MarkUnread(ctx context.Context, externalID, itemID string) error {
	return u.transition(ctx, externalID, itemID, func(item *domain.SavedItem) {
		item.ReadAt = nil
	})
}

func (u *articleUsecase) Archive(ctx context.Context, externalID, itemID string) error {
	return u.transition(ctx, externalID, itemID, func(item *domain.SavedItem) {
		now := time.Now()
		item.ArchivedAt = &now
	})
}

func (u *articleUsecase) Unarchive(ctx context.Context, externalID, itemID string) error {
	return u.transition(ctx, externalID, itemID, func(item *domain.SavedItem) {
		item.ArchivedAt = nil
	})
}

// transition loads the item, re-verifies ownership by value, applies the
// mutation, and writes it back. Ownership is never trusted from the client.
func (u *articleUsecase) transition(ctx context.Context, externalID, itemID string, apply func(*domain.SavedItem)) error {
	user, err := u.users.ResolveUser(ctx, externalID)
	if err != nil {
		return err
	}

	item, err := u.itemRepo.FindByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	if item.UserID != user.ID {
		return ErrUnauthorized
	}

	apply(item)
	return u.itemRepo.Update(item)
}

func (u *articleUsecase) List(ctx context.Context, externalID string, filter domain.Filter) (*ListResult, error) {
	user, err := u.users.ResolveUser(ctx, externalID)
	if err != nil {
		return nil, err
	}

	items, err := u.itemRepo.FindByUser(user.ID, filter, listLimit)
	if err != nil {
		return nil, err
	}

	counts, err := u.countAll(user)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Items: items, Counts: counts}
	if filter == domain.FilterAll {
		result.Groups = groupByStatus(items)
	}
	return result, nil
}

// countAll runs the per-filter badge counts in parallel; they are read-only
// and order-independent.
func (u *articleUsecase) countAll(user *authdomain.User) (domain.FilterCounts, error) {
	var counts domain.FilterCounts
	targets := []struct {
		filter domain.Filter
		dest   *int64
	}{
		{domain.FilterAll, &counts.All},
		{domain.FilterUnread, &counts.Unread},
		{domain.FilterRead, &counts.Read},
		{domain.FilterArchived, &counts.Archived},
		{domain.FilterQuickRead, &counts.QuickRead},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(targets))
	for i, target := range targets {
		wg.Add(1)
		go func(i int, filter domain.Filter, dest *int64) {
			defer wg.Done()
			n, err := u.itemRepo.CountByFilter(user.ID, filter)
			if err != nil {
				errs[i] = err
				return
			}
			*dest = n
		}(i, target.filter, target.dest)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return domain.FilterCounts{}, err
		}
	}
	return counts, nil
}

func groupByStatus(items []*domain.SavedItem) *GroupedItems {
	groups := &GroupedItems{
		Unread:   []*domain.SavedItem{},
		Read:     []*domain.SavedItem{},
		Archived: []*domain.SavedItem{},
	}
	for _, item := range items {
		switch {
		case item.IsArchived():
			groups.Archived = append(groups.Archived, item)
		case item.IsRead():
			groups.Read = append(groups.Read, item)
		default:
			groups.Unread = append(groups.Unread, item)
		}
	}
	return groups
}

// validateURL accepts syntactically valid absolute http(s) URLs only.
func validateURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrInvalidURL
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", ErrInvalidURL
	}
	return parsed.String(), nil
}

// estimateReadingTime converts a word count to whole minutes at the user's
// reading speed, never below one minute.
func estimateReadingTime(wordCount, readingSpeed int) int {
	if readingSpeed <= 0 {
		readingSpeed = authdomain.DefaultReadingSpeed
	}
	minutes := int(math.Ceil(float64(wordCount) / float64(readingSpeed)))
	if minutes < 1 {
		return 1
	}
	return minutes
}
