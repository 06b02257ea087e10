package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// UserService handles user registration and lookup.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser registers a new user from a name and email.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	user := &models.User{
		Name:  name,
		Email: email,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		slog.Error("CreateUser failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("User created", "user_id", user.ID)
	return user, nil
}

// GetUser retrieves a user by ID, including their group memberships.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id required", ErrValidation)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		slog.Error("GetUser failed", "user_id", userID, "error", err)
		return nil, err
	}
	return user, nil
}
