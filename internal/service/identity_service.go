package service

import (
	"context"
	"strings"

	"glimpse/internal/models"
	"glimpse/internal/repository"
)

// IdentityService resolves users across the two identifier namespaces
// (internal UUID and external auth ID) and provisions user rows the first
// time an authenticated subject is seen.
type IdentityService struct {
	userRepo repository.UserRepository
}

// ProvisionInput carries the identity attributes of a verified token.
type ProvisionInput struct {
	AuthID            string
	Name              string
	PreferredUsername string
	Email             string
}

func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// Resolve looks up a user by internal ID or external auth ID.
// Returns a NOT_FOUND error when neither matches.
func (s *IdentityService) Resolve(ctx context.Context, identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, models.NewValidationError("User identifier is required")
	}

	user, err := s.userRepo.ResolveByAnyID(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", identifier)
	}
	return user, nil
}

// EnsureUser returns the user row for the authenticated subject, creating it
// on first sight. Concurrent first requests are safe: the storage upsert
// guarantees a single row per auth ID.
func (s *IdentityService) EnsureUser(ctx context.Context, in ProvisionInput) (*models.User, error) {
	if strings.TrimSpace(in.AuthID) == "" {
		return nil, models.NewUnauthorizedError("Missing authentication subject")
	}

	user := &models.User{
		AuthID:      in.AuthID,
		DisplayName: displayNameFrom(in),
	}
	return s.userRepo.UpsertByAuthID(ctx, user)
}

// displayNameFrom picks the first usable profile attribute for the display
// name, falling back to "Unknown" when the token carries none.
func displayNameFrom(in ProvisionInput) string {
	for _, candidate := range []string{in.Name, in.PreferredUsername, in.Email} {
		if name := strings.TrimSpace(candidate); name != "" {
			return name
		}
	}
	return "Unknown"
}
