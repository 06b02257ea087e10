package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.Name, user.Email, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID, including their ordered group list.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, created_at FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id FROM user_groups WHERE user_id = ? ORDER BY position",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("failed to scan user group: %w", err)
		}
		user.Groups = append(user.Groups, groupID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user groups: %w", err)
	}

	return user, nil
}

// GetUsersByIDs retrieves multiple users keyed by ID. Users that don't
// exist are omitted from the result. Group lists are not populated; this
// is a lookup for display-name resolution.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User)
	if len(ids) == 0 {
		return users, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, created_at FROM users WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// AppendUserGroup appends a group ID to a user's group list, conditional on
// the user existing. The guarded single-statement insert makes the append
// atomic: concurrent appends cannot clobber each other's positions because
// the position subquery and insert run in one statement.
func (s *SQLiteStore) AppendUserGroup(ctx context.Context, userID, groupID string) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO user_groups (user_id, group_id, position)
		 SELECT ?, ?, COALESCE((SELECT MAX(position) + 1 FROM user_groups WHERE user_id = ?), 0)
		 WHERE EXISTS (SELECT 1 FROM users WHERE id = ?)`,
		userID, groupID, userID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to append group to user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check append result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	return nil
}
