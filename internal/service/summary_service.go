package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/shopspring/decimal"
)

// Summary is the consolidated settlement view for one group: the pairwise
// creditor→debtor amounts (with negative mirrors under the debtor's key)
// and the ordered payment instructions.
type Summary struct {
	Pairwise map[string]map[string]decimal.Decimal
	Details  []string
}

// SummaryService computes who-owes-whom summaries for a group.
type SummaryService struct {
	store storage.Store
}

// NewSummaryService creates a new SummaryService with the given storage
// backend.
func NewSummaryService(store storage.Store) *SummaryService {
	return &SummaryService{store: store}
}

// GetSummary recomputes the group's settlement plan from scratch: it loads
// every transaction the group references, accumulates the stored payable
// maps into net balances, and runs the settlement engine over the result.
// The computation works on an in-memory snapshot fetched here; a summary
// may lag a transaction written concurrently.
func (s *SummaryService) GetSummary(ctx context.Context, groupID string) (*Summary, error) {
	slog.Info("GetSummary request received", "group_id", groupID)

	if groupID == "" {
		return nil, fmt.Errorf("%w: group_id required", ErrValidation)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Error("GetSummary: failed to get group", "group_id", groupID, "error", err)
		return nil, err
	}

	transactions, err := s.store.GetTransactionsByIDs(ctx, group.Transactions)
	if err != nil {
		slog.Error("GetSummary: failed to resolve transactions", "group_id", groupID, "error", err)
		return nil, err
	}

	payables := make([]ledger.PayableMap, len(transactions))
	for i, trans := range transactions {
		payables[i] = trans.Payables
	}
	balances := ledger.Accumulate(payables)

	// Display names for instructions; a missing user degrades to their
	// raw ID inside the engine instead of failing the summary.
	names := make(map[string]string, len(group.Members))
	users, err := s.store.GetUsersByIDs(ctx, group.Members)
	if err != nil {
		slog.Warn("GetSummary: failed to resolve member names", "group_id", groupID, "error", err)
	} else {
		for id, user := range users {
			names[id] = user.Name
		}
	}

	plan, err := ledger.Settle(balances, names)
	if err != nil {
		slog.Error("GetSummary: settlement failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("GetSummary successful",
		"group_id", groupID,
		"transactions_count", len(transactions),
		"settlements_count", len(plan.Instructions),
	)
	return &Summary{Pairwise: plan.Pairwise, Details: plan.Instructions}, nil
}
