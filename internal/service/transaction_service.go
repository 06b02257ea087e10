package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/shopspring/decimal"
)

// CreateTransactionInput carries the validated request fields for a new
// transaction.
type CreateTransactionInput struct {
	Name         string
	GroupID      string
	TotalAmount  decimal.Decimal
	Participants []string
	Payers       map[string]decimal.Decimal
	Details      string
}

// TransactionService handles recording and retrieving transactions.
type TransactionService struct {
	store storage.Store
}

// NewTransactionService creates a new TransactionService with the given
// storage backend.
func NewTransactionService(store storage.Store) *TransactionService {
	return &TransactionService{store: store}
}

// CreateTransaction validates and records a new transaction against a
// group. The derived payable map is computed once here and stored with the
// record; summaries never recompute it.
//
// Rejections, in order: missing fields (ErrValidation), unknown group
// (storage.ErrNotFound), participant or payer outside the group's member
// list (ErrMembership), payer contributions not summing exactly to the
// total (ErrAmountMismatch). Nothing is persisted on rejection.
func (s *TransactionService) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	slog.Info("CreateTransaction request received",
		"name", in.Name,
		"group_id", in.GroupID,
		"total_amount", in.TotalAmount,
		"participants_count", len(in.Participants),
	)

	if in.Name == "" || in.GroupID == "" || len(in.Participants) == 0 || len(in.Payers) == 0 {
		return nil, fmt.Errorf("%w: name, group_id, participants and payers are required", ErrValidation)
	}
	if !in.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total_amount must be positive", ErrValidation)
	}

	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		slog.Error("CreateTransaction: failed to get group", "group_id", in.GroupID, "error", err)
		return nil, err
	}

	memberSet := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		memberSet[m] = true
	}
	for _, userID := range in.Participants {
		if !memberSet[userID] {
			return nil, fmt.Errorf("%w: participant %s", ErrMembership, userID)
		}
	}
	for userID := range in.Payers {
		if !memberSet[userID] {
			return nil, fmt.Errorf("%w: payer %s", ErrMembership, userID)
		}
	}

	// Exact equality, no tolerance: the declared total and the payer
	// contributions come from the same request.
	paid := decimal.Zero
	for _, amount := range in.Payers {
		paid = paid.Add(amount)
	}
	if !paid.Equal(in.TotalAmount) {
		return nil, fmt.Errorf("%w: paid %s, declared %s", ErrAmountMismatch, paid, in.TotalAmount)
	}

	payables, err := ledger.BuildPayables(in.TotalAmount, in.Payers, in.Participants)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	trans := &models.Transaction{
		Name:         in.Name,
		GroupID:      in.GroupID,
		TotalAmount:  in.TotalAmount,
		Participants: in.Participants,
		Payers:       in.Payers,
		Payables:     payables,
		Details:      in.Details,
	}
	if err := s.store.CreateTransaction(ctx, trans); err != nil {
		slog.Error("CreateTransaction failed", "error", err)
		return nil, err
	}

	// Link after the record exists: a failed append leaves an unlinked
	// transaction rather than a group pointing at a missing record.
	if err := s.store.AppendGroupTransaction(ctx, in.GroupID, trans.ID); err != nil {
		slog.Error("CreateTransaction: failed to link transaction",
			"group_id", in.GroupID, "trans_id", trans.ID, "error", err)
		return nil, err
	}

	slog.Info("Transaction created", "trans_id", trans.ID, "group_id", in.GroupID)
	return trans, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, transID string) (*models.Transaction, error) {
	if transID == "" {
		return nil, fmt.Errorf("%w: trans_id required", ErrValidation)
	}

	trans, err := s.store.GetTransaction(ctx, transID)
	if err != nil {
		slog.Error("GetTransaction failed", "trans_id", transID, "error", err)
		return nil, err
	}
	return trans, nil
}
