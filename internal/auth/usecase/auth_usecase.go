package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	authdomain "laterstack-backend/internal/auth/domain"
	"laterstack-backend/internal/auth/dto"
	"laterstack-backend/internal/auth/repository"
	"laterstack-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// authUsecase implements AuthUsecase
type authUsecase struct {
	userRepo repository.UserRepository
	profiles ProfileFetcher
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, profiles ProfileFetcher, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		profiles: profiles,
		config:   cfg,
	}
}

func (u *authUsecase) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(u.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	externalID, err := token.Claims.GetSubject()
	if err != nil || externalID == "" {
		return "", errors.New("token missing subject")
	}
	return externalID, nil
}

func (u *authUsecase) ResolveUser(ctx context.Context, externalID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByExternalID(externalID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	// Not synced yet via webhook, create now with default preferences
	profile, err := u.profiles.GetUser(ctx, externalID)
	if err != nil {
		log.Printf("[Auth] profile fetch failed for %s: %v", externalID, err)
		return nil, ErrProvisioning
	}

	user = &authdomain.User{
		ExternalID:   externalID,
		Email:        profile.Email,
		Name:         profile.DisplayName(),
		Interests:    []string{},
		Goals:        "",
		ReadingSpeed: authdomain.DefaultReadingSpeed,
	}

	if err := u.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// The webhook created the row between our check and create.
			// The first writer keeps the row.
			existing, findErr := u.userRepo.FindByExternalID(externalID)
			if findErr == nil && existing != nil {
				return existing, nil
			}
		}
		log.Printf("[Auth] user creation failed for %s: %v", externalID, err)
		return nil, ErrProvisioning
	}

	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, externalID string, req dto.UpdateProfileRequest) (*authdomain.User, error) {
	interests := ParseInterests(req.Interests)

	if err := ValidateGoals(req.Goals); err != nil {
		return nil, err
	}

	speed, err := ValidateReadingSpeed(req.ReadingSpeed.String())
	if err != nil {
		return nil, err
	}

	user, err := u.ResolveUser(ctx, externalID)
	if err != nil {
		return nil, err
	}

	user.Interests = interests
	user.Goals = req.Goals
	user.ReadingSpeed = speed

	if err := u.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) HandleIdentityEvent(ctx context.Context, event dto.WebhookEvent) error {
	name := strings.TrimSpace(event.Data.FirstName + " " + event.Data.LastName)

	switch event.Type {
	case "user.created":
		user := &authdomain.User{
			ExternalID:   event.Data.ID,
			Email:        event.Data.Email,
			Name:         name,
			Interests:    []string{},
			Goals:        "",
			ReadingSpeed: authdomain.DefaultReadingSpeed,
		}
		err := u.userRepo.Create(user)
		if errors.Is(err, repository.ErrDuplicate) {
			// Lazy provisioning won the race; converge by updating profile fields
			return u.upsertProfileFields(event.Data.ID, event.Data.Email, name)
		}
		return err

	case "user.updated":
		err := u.upsertProfileFields(event.Data.ID, event.Data.Email, name)
		if errors.Is(err, ErrUserNotFound) {
			// Update for a user we never saw; treat as create so events
			// arriving out of order still converge
			return u.HandleIdentityEvent(ctx, dto.WebhookEvent{Type: "user.created", Data: event.Data})
		}
		return err

	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, event.Type)
	}
}

func (u *authUsecase) upsertProfileFields(externalID, email, name string) error {
	user, err := u.userRepo.FindByExternalID(externalID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	user.Email = email
	user.Name = name
	return u.userRepo.Update(user)
}
