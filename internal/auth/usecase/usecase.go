package usecase

import (
	"context"
	"errors"

	authdomain "laterstack-backend/internal/auth/domain"
	"laterstack-backend/internal/auth/dto"
	"laterstack-backend/pkg/identity"
)

// Errors surfaced to handlers. Messages are user-facing.
var (
	ErrProvisioning        = errors.New("Failed to create or find user account. Please try again.")
	ErrUserNotFound        = errors.New("User not found")
	ErrGoalsTooLong        = errors.New("Goals must be 500 characters or less")
	ErrInvalidReadingSpeed = errors.New("Reading speed must be a number between 50 and 1000")
	ErrUnknownEvent        = errors.New("unknown event type")
)

// ProfileFetcher resolves identity-provider profiles for lazy provisioning.
// Satisfied by *identity.Client.
type ProfileFetcher interface {
	GetUser(ctx context.Context, externalID string) (*identity.Profile, error)
}

// AuthUsecase owns account resolution and reading preferences.
type AuthUsecase interface {
	// ValidateToken checks a session token and returns the external user id.
	ValidateToken(token string) (string, error)

	// ResolveUser returns the account for an external id, creating it with
	// default preferences if the sync webhook hasn't arrived yet. Idempotent
	// and safe under concurrent invocation for the same external id.
	ResolveUser(ctx context.Context, externalID string) (*authdomain.User, error)

	// UpdateProfile validates and stores reading preferences.
	UpdateProfile(ctx context.Context, externalID string, req dto.UpdateProfileRequest) (*authdomain.User, error)

	// HandleIdentityEvent applies a provider sync event. Both event types
	// converge with the lazy provisioning path: a create that loses the race
	// turns into a field update on the existing row.
	HandleIdentityEvent(ctx context.Context, event dto.WebhookEvent) error
}
