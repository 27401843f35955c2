package usecase

import (
	"strconv"
	"strings"

	authdomain "laterstack-backend/internal/auth/domain"
)

// ParseInterests splits a comma-separated interest string into a clean list.
// Entries are trimmed and empties dropped; order is kept but irrelevant.
func ParseInterests(raw string) []string {
	parts := strings.Split(raw, ",")
	interests := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			interests = append(interests, trimmed)
		}
	}
	return interests
}

// ValidateGoals enforces the 500-character cap on the free-text goal.
func ValidateGoals(goals string) error {
	if len(goals) > authdomain.MaxGoalsLength {
		return ErrGoalsTooLong
	}
	return nil
}

// ValidateReadingSpeed coerces the raw value to an int and range-checks it.
func ValidateReadingSpeed(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return authdomain.DefaultReadingSpeed, nil
	}
	speed, err := strconv.Atoi(raw)
	if err != nil {
		// Accept values like "250.0" that JSON clients may send
		if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
			speed = int(f)
		} else {
			return 0, ErrInvalidReadingSpeed
		}
	}
	if speed < authdomain.MinReadingSpeed || speed > authdomain.MaxReadingSpeed {
		return 0, ErrInvalidReadingSpeed
	}
	return speed, nil
}
