package domain

import "time"

// SavedItem is an article saved for later reading. Rows are created only by
// the save pipeline and mutated only through the four state transitions;
// deletion is out of scope.
//
// Read and archived are two independent dimensions, not an enum: all four
// combinations of (readAt, archivedAt) are valid.
type SavedItem struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"not null;uniqueIndex:idx_items_user_url"`
	URL    string `json:"url" gorm:"not null;uniqueIndex:idx_items_user_url"`

	Title         string `json:"title"`
	Content       string `json:"content"`
	EstimatedTime int    `json:"estimated_time"` // minutes, always >= 1

	Topics         []string `json:"topics" gorm:"serializer:json"`
	RelevanceScore float64  `json:"relevance_score"`
	Reasoning      string   `json:"reasoning"`

	SavedAt    time.Time  `json:"saved_at"`
	ReadAt     *time.Time `json:"read_at"`
	ArchivedAt *time.Time `json:"archived_at"`
}

func (i *SavedItem) IsRead() bool {
	return i.ReadAt != nil
}

func (i *SavedItem) IsArchived() bool {
	return i.ArchivedAt != nil
}

// Filter selects a triage view of a user's items.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUnread    Filter = "unread"
	FilterRead      Filter = "read"
	FilterArchived  Filter = "archived"
	FilterQuickRead Filter = "quick-read" // under 5 minutes, not archived
)

// QuickReadMaxMinutes is the exclusive upper bound for the quick-read view.
const QuickReadMaxMinutes = 5

// ParseFilter maps a query value onto a known filter, defaulting to all.
func ParseFilter(raw string) Filter {
	switch Filter(raw) {
	case FilterUnread, FilterRead, FilterArchived, FilterQuickRead:
		return Filter(raw)
	default:
		return FilterAll
	}
}

// FilterCounts holds the per-filter badge counts shown in the UI.
type FilterCounts struct {
	All       int64 `json:"all"`
	Unread    int64 `json:"unread"`
	Read      int64 `json:"read"`
	Archived  int64 `json:"archived"`
	QuickRead int64 `json:"quick_read"`
}
