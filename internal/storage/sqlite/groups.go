package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreateGroup persists a new group with its member list.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, details, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.Details, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for i, userID := range group.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO group_members (group_id, user_id, position) VALUES (?, ?, ?)",
			group.ID, userID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including its ordered member and
// transaction lists.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, details, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.Details, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		group.Members = append(group.Members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}

	transRows, err := s.db.QueryContext(ctx,
		"SELECT trans_id FROM group_transactions WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group transactions: %w", err)
	}
	defer transRows.Close()

	for transRows.Next() {
		var transID string
		if err := transRows.Scan(&transID); err != nil {
			return nil, fmt.Errorf("failed to scan group transaction: %w", err)
		}
		group.Transactions = append(group.Transactions, transID)
	}
	if err := transRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group transactions: %w", err)
	}

	return group, nil
}

// AppendGroupTransaction appends a transaction ID to a group's transaction
// list, conditional on the group existing. Same guarded single-statement
// shape as AppendUserGroup; a concurrent group deletion makes this a no-op
// reported as ErrNotFound rather than a lost update.
func (s *SQLiteStore) AppendGroupTransaction(ctx context.Context, groupID, transID string) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO group_transactions (group_id, trans_id, position)
		 SELECT ?, ?, COALESCE((SELECT MAX(position) + 1 FROM group_transactions WHERE group_id = ?), 0)
		 WHERE EXISTS (SELECT 1 FROM groups WHERE id = ?)`,
		groupID, transID, groupID, groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction to group: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check append result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	return nil
}
