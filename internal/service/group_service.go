package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// GroupService handles group creation and lookup.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group from a name and a requested member list.
// Each requested member is validated by the conditional append of the new
// group ID onto their group list: unknown user IDs are dropped from the
// member list without failing the whole request. If no requested member is
// valid the creation fails as a validation error and nothing is persisted.
func (s *GroupService) CreateGroup(ctx context.Context, name string, members []string, details string) (*models.Group, error) {
	slog.Info("CreateGroup request received", "name", name, "members_count", len(members))

	if name == "" || len(members) == 0 {
		return nil, fmt.Errorf("%w: name and members are required", ErrValidation)
	}

	// The group ID is generated up front so membership can be appended to
	// each user record before the group row exists; a group is only
	// reachable through its ID, so the partial state is invisible.
	groupID := uuid.New().String()

	var validated []string
	for _, userID := range members {
		err := s.store.AppendUserGroup(ctx, userID, groupID)
		if errors.Is(err, storage.ErrNotFound) {
			slog.Warn("CreateGroup: dropping unknown member", "user_id", userID)
			continue
		}
		if err != nil {
			slog.Error("CreateGroup: failed to update user", "user_id", userID, "error", err)
			return nil, err
		}
		validated = append(validated, userID)
	}

	if len(validated) == 0 {
		return nil, fmt.Errorf("%w: member ids passed are not valid", ErrValidation)
	}

	group := &models.Group{
		ID:      groupID,
		Name:    name,
		Members: validated,
		Details: details,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(validated))
	return group, nil
}

// GetGroup retrieves a group by ID, including its member and transaction
// lists.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	if groupID == "" {
		return nil, fmt.Errorf("%w: group_id required", ErrValidation)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return group, nil
}
