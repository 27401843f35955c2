package repository

import (
	"errors"
	"time"

	"laterstack-backend/internal/article/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormItemRepository implements ItemRepository using GORM
type gormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new GORM-based ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &gormItemRepository{db: db}
}

func (r *gormItemRepository) Create(item *domain.SavedItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.SavedAt = time.Now()

	if err := r.db.Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *gormItemRepository) FindByID(id string) (*domain.SavedItem, error) {
	var item domain.SavedItem
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormItemRepository) FindByUserAndURL(userID, url string) (*domain.SavedItem, error) {
	var item domain.SavedItem
	err := r.db.Where("user_id = ? AND url = ?", userID, url).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormItemRepository) FindByUser(userID string, filter domain.Filter, limit int) ([]*domain.SavedItem, error) {
	var items []*domain.SavedItem
	err := applyFilter(r.db.Where("user_id = ?", userID), filter).
		Order("relevance_score DESC, saved_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *gormItemRepository) CountByFilter(userID string, filter domain.Filter) (int64, error) {
	var count int64
	err := applyFilter(r.db.Model(&domain.SavedItem{}).Where("user_id = ?", userID), filter).
		Count(&count).Error
	return count, err
}

func (r *gormItemRepository) Update(item *domain.SavedItem) error {
	return r.db.Save(item).Error
}

func applyFilter(query *gorm.DB, filter domain.Filter) *gorm.DB {
	switch filter {
	case domain.FilterUnread:
		return query.Where("read_at IS NULL AND archived_at IS NULL")
	case domain.FilterRead:
		return query.Where("read_at IS NOT NULL AND archived_at IS NULL")
	case domain.FilterArchived:
		return query.Where("archived_at IS NOT NULL")
	case domain.FilterQuickRead:
		return query.Where("estimated_time < ? AND archived_at IS NULL", domain.QuickReadMaxMinutes)
	default:
		return query
	}
}
