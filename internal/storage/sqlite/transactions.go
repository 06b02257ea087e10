package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/shopspring/decimal"
)

// CreateTransaction persists a new transaction record, including its payer
// map and derived payable map.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, trans *models.Transaction) error {
	if trans.ID == "" {
		trans.ID = uuid.New().String()
	}
	if trans.CreatedAt == 0 {
		trans.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO transactions (id, name, group_id, total_amount, details, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		trans.ID, trans.Name, trans.GroupID, trans.TotalAmount.String(), trans.Details, trans.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	for i, userID := range trans.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO transaction_participants (trans_id, user_id, position) VALUES (?, ?, ?)",
			trans.ID, userID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for userID, amount := range trans.Payers {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO transaction_payers (trans_id, user_id, amount) VALUES (?, ?, ?)",
			trans.ID, userID, amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}
	}

	for userID, amount := range trans.Payables {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO transaction_payables (trans_id, user_id, amount) VALUES (?, ?, ?)",
			trans.ID, userID, amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert payable: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTransaction retrieves a transaction by ID, including participants,
// payers, and the stored payable map.
func (s *SQLiteStore) GetTransaction(ctx context.Context, transID string) (*models.Transaction, error) {
	trans := &models.Transaction{}
	var totalRaw string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, group_id, total_amount, details, created_at FROM transactions WHERE id = ?",
		transID,
	).Scan(&trans.ID, &trans.Name, &trans.GroupID, &totalRaw, &trans.Details, &trans.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %s: %w", transID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if trans.TotalAmount, err = scanDecimal(totalRaw); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM transaction_participants WHERE trans_id = ? ORDER BY position",
		transID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		trans.Participants = append(trans.Participants, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	if trans.Payers, err = s.amountMap(ctx, "transaction_payers", transID); err != nil {
		return nil, err
	}
	if trans.Payables, err = s.amountMap(ctx, "transaction_payables", transID); err != nil {
		return nil, err
	}

	return trans, nil
}

// GetTransactionsByIDs retrieves the given transactions in order. A missing
// ID fails the whole call: a group referencing an unresolvable transaction
// is corrupt data, not a partial result.
func (s *SQLiteStore) GetTransactionsByIDs(ctx context.Context, ids []string) ([]*models.Transaction, error) {
	transactions := make([]*models.Transaction, 0, len(ids))
	for _, id := range ids {
		trans, err := s.GetTransaction(ctx, id)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, trans)
	}
	return transactions, nil
}

// amountMap loads a (user_id, amount) table for one transaction.
func (s *SQLiteStore) amountMap(ctx context.Context, table, transID string) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, amount FROM "+table+" WHERE trans_id = ?",
		transID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	amounts := make(map[string]decimal.Decimal)
	for rows.Next() {
		var userID, raw string
		if err := rows.Scan(&userID, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		amount, err := scanDecimal(raw)
		if err != nil {
			return nil, err
		}
		amounts[userID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}

	return amounts, nil
}
