package repository

import (
	"errors"

	authdomain "laterstack-backend/internal/auth/domain"
)

// ErrDuplicate is returned when a write violates a uniqueness constraint.
// The provisioner treats it as a benign race, not a failure.
var ErrDuplicate = errors.New("duplicate record")

// UserRepository defines data access for user accounts
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByID(id string) (*authdomain.User, error)
	FindByExternalID(externalID string) (*authdomain.User, error)
	Update(user *authdomain.User) error
}
