package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/JayL96/user-management/models"
	"github.com/JayL96/user-management/repositories"
)

// UserService interface defines user management business logic
type UserService interface {
	GetAll(ctx context.Context) ([]models.User, error)
	FilterByActive(ctx context.Context, isActive bool) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// userService implements UserService
type userService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetAll retrieves all users
func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// FilterByActive retrieves users matching the active flag
func (s *userService) FilterByActive(ctx context.Context, isActive bool) ([]models.User, error) {
	return s.userRepo.GetByActive(ctx, isActive)
}

// GetByID retrieves a user by ID. Returns models.ErrNotFound when absent.
func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Create creates a new user; the store assigns its ID
func (s *userService) Create(ctx context.Context, user *models.User) error {
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update loads the existing record and overwrites its presentation fields.
// An ID that matches no record is a silent no-op, not an error.
func (s *userService) Update(ctx context.Context, user *models.User) error {
	existing, err := s.userRepo.GetByID(ctx, user.ID)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load user for update: %w", err)
	}

	existing.Forename = user.Forename
	existing.Surname = user.Surname
	existing.Email = user.Email
	existing.DateOfBirth = user.DateOfBirth
	existing.IsActive = user.IsActive

	if err := s.userRepo.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Delete removes a user by ID. An absent ID is a silent no-op.
func (s *userService) Delete(ctx context.Context, id int64) error {
	_, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load user for delete: %w", err)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Count returns the total number of users
func (s *userService) Count(ctx context.Context) (int, error) {
	return s.userRepo.Count(ctx)
}
