package services

import (
	"errors"
	"time"

	"journal-review-api/models"
	"journal-review-api/repository"

	"gorm.io/gorm"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns a filtered, paginated page of users (admin view).
func (s *UserService) List(filter repository.UserFilter) ([]models.User, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Role != "" && !models.ValidRole(filter.Role) {
		return nil, 0, ValidationError("Unknown role filter")
	}

	users, total, err := s.users.List(filter)
	if err != nil {
		return nil, 0, InternalError("Failed to fetch users", err)
	}
	return users, total, nil
}

// Get returns one user.
func (s *UserService) Get(id int) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("User not found")
		}
		return nil, InternalError("Failed to fetch user", err)
	}
	return user, nil
}

// ChangeRole sets a user's role. Admin only; the role enum is validated here
// so the route gate is not the only line of defense.
func (s *UserService) ChangeRole(id int, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, ValidationError("Unknown role")
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.UpdateRole(id, role, now); err != nil {
		return nil, InternalError("Failed to update role", err)
	}

	user.Role = role
	user.UpdateAt = &now
	return user, nil
}

// SetActive activates or deactivates an account. Users referenced by
// submissions or reviews are never hard-deleted; deactivation is the way out.
func (s *UserService) SetActive(id int, active bool) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.SetActive(id, active, now); err != nil {
		return nil, InternalError("Failed to update account state", err)
	}

	user.IsActive = active
	user.UpdateAt = &now
	return user, nil
}

// ListReviewers returns the active reviewers for the assignment picker.
func (s *UserService) ListReviewers() ([]models.User, error) {
	reviewers, err := s.users.ListActiveReviewers()
	if err != nil {
		return nil, InternalError("Failed to fetch reviewers", err)
	}
	return reviewers, nil
}
