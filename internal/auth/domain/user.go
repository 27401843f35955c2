package domain

import "time"

// User is the durable account record. Exactly one row exists per identity
// provider id; rows are created lazily on first authenticated access or by
// the provider's sync webhook, whichever runs first.
type User struct {
	ID         string `json:"id" gorm:"primaryKey"`
	ExternalID string `json:"external_id" gorm:"uniqueIndex;not null"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`

	// Reading preferences drive relevance scoring and time estimates
	Interests    []string `json:"interests" gorm:"serializer:json"`
	Goals        string   `json:"goals"`
	ReadingSpeed int      `json:"reading_speed" gorm:"default:250"` // words per minute

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	DefaultReadingSpeed = 250
	MinReadingSpeed     = 50
	MaxReadingSpeed     = 1000
	MaxGoalsLength      = 500
)
