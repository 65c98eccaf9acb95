package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdo754/soccer-team-hub/internal/domain"
	"github.com/abdo754/soccer-team-hub/internal/repository"
)

// UserService handles business logic for users and profiles
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Update replaces the stored user with a matching id. A user may update
// their own profile; a coach may update anyone. The id itself is immutable.
// Because the current user is always re-read from the store, there is no
// window where the session and the stored profile disagree.
func (s *UserService) Update(ctx context.Context, actor *Claims, user *domain.User) (*domain.User, error) {
	if actor.UserID != user.ID && actor.Role != domain.RoleCoach {
		return nil, domain.ErrForbidden
	}

	if strings.TrimSpace(user.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !user.Role.IsValid() {
		return nil, fmt.Errorf("%w: role must be Coach or Player", domain.ErrValidation)
	}
	if user.Avatar == "" {
		return nil, fmt.Errorf("%w: avatar is required", domain.ErrValidation)
	}
	if user.JerseyNumber < 0 {
		return nil, fmt.Errorf("%w: jersey number must not be negative", domain.ErrValidation)
	}

	// The stored password survives when the caller omits it
	if user.Password == "" {
		stored, err := s.userRepo.GetByID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Password = stored.Password
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, user.ID)
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// List returns all users in creation order
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}
