package repository

import (
	"errors"

	"laterstack-backend/internal/article/domain"
)

// ErrDuplicate is returned when a create violates the (user, url) uniqueness
// constraint. The store-level constraint is the authoritative guard against
// concurrent saves; the pipeline's read-time duplicate check is advisory.
var ErrDuplicate = errors.New("duplicate item")

// ItemRepository defines data access for saved articles
type ItemRepository interface {
	Create(item *domain.SavedItem) error
	FindByID(id string) (*domain.SavedItem, error)
	FindByUserAndURL(userID, url string) (*domain.SavedItem, error)
	FindByUser(userID string, filter domain.Filter, limit int) ([]*domain.SavedItem, error)
	CountByFilter(userID string, filter domain.Filter) (int64, error)
	Update(item *domain.SavedItem) error
}
