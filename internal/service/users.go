package service

import (
	"context"
	"fmt"
	"log/slog"

	"libris/internal/models"
	"libris/internal/storage"
)

// UserService manages registered library users.
type UserService struct {
	store storage.PersistenceService
}

// NewUserService creates a UserService over the given backend.
func NewUserService(store storage.PersistenceService) *UserService {
	return &UserService{store: store}
}

// AddUser registers a new user. Fails when the id is already taken.
func (s *UserService) AddUser(ctx context.Context, userID, name string) error {
	user, err := models.NewUser(userID, name)
	if err != nil {
		return err
	}

	_, exists, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: user %q already exists", models.ErrOperationFailed, userID)
	}

	if err := s.store.SaveUser(ctx, user); err != nil {
		return err
	}
	slog.Info("user added", "user_id", userID, "name", name)
	return nil
}

// FindUserByID looks up a single user.
func (s *UserService) FindUserByID(ctx context.Context, userID string) (models.User, bool, error) {
	if userID == "" {
		return models.User{}, false, fmt.Errorf("%w: user id cannot be empty", models.ErrInvalidArgument)
	}
	return s.store.LoadUser(ctx, userID)
}

// FindUsersByName returns all users with exactly the given name.
func (s *UserService) FindUsersByName(ctx context.Context, name string) ([]models.User, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: user name cannot be empty", models.ErrInvalidArgument)
	}
	all, err := s.store.LoadAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	var matches []models.User
	for _, user := range all {
		if user.Name == name {
			matches = append(matches, user)
		}
	}
	return matches, nil
}

// GetAllUsers returns every registered user.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.store.LoadAllUsers(ctx)
}

// UpdateUser renames an existing user.
func (s *UserService) UpdateUser(ctx context.Context, userID, newName string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id cannot be empty", models.ErrInvalidArgument)
	}
	if newName == "" {
		return fmt.Errorf("%w: user name cannot be empty", models.ErrInvalidArgument)
	}

	user, found, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: user %q not found for update", models.ErrNotFound, userID)
	}

	user.Name = newName
	if err := s.store.SaveUser(ctx, user); err != nil {
		return err
	}
	slog.Info("user updated", "user_id", userID, "name", newName)
	return nil
}

// RemoveUser deletes the user if it exists and reports whether it did.
func (s *UserService) RemoveUser(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("%w: user id cannot be empty", models.ErrInvalidArgument)
	}
	_, exists, err := s.store.LoadUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return false, err
	}
	slog.Info("user removed", "user_id", userID)
	return true, nil
}
