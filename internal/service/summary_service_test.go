package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/storage"
)

func TestGetSummary(t *testing.T) {
	store := newTestStore(t)
	transSvc := NewTransactionService(store)
	sumSvc := NewSummaryService(store)
	ctx := context.Background()
	groupID := setupGroup(t, store, "alice", "bob", "charlie")

	// Alice fronts dinner for everyone.
	_, err := transSvc.CreateTransaction(ctx, CreateTransactionInput{
		Name:         "Dinner",
		GroupID:      groupID,
		TotalAmount:  dec(t, "90"),
		Participants: []string{"alice", "bob", "charlie"},
		Payers:       map[string]decimal.Decimal{"alice": dec(t, "90")},
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	// Bob covers a cab for himself and Alice.
	_, err = transSvc.CreateTransaction(ctx, CreateTransactionInput{
		Name:         "Cab",
		GroupID:      groupID,
		TotalAmount:  dec(t, "20"),
		Participants: []string{"alice", "bob"},
		Payers:       map[string]decimal.Decimal{"bob": dec(t, "20")},
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	summary, err := sumSvc.GetSummary(ctx, groupID)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	// Net balances: alice +50, bob -20, charlie -30.
	// Greedy plan: bob pays 20 to alice, charlie pays 30 to alice.
	if !summary.Pairwise["alice"]["bob"].Equal(dec(t, "20")) {
		t.Errorf("alice<-bob = %s, want 20", summary.Pairwise["alice"]["bob"])
	}
	if !summary.Pairwise["alice"]["charlie"].Equal(dec(t, "30")) {
		t.Errorf("alice<-charlie = %s, want 30", summary.Pairwise["alice"]["charlie"])
	}
	if len(summary.Details) != 2 {
		t.Fatalf("details = %v, want 2 instructions", summary.Details)
	}

	// Instructions use display names seeded by createTestUser.
	want := map[string]bool{
		"bob should pay Rs.20.00 to alice":     true,
		"charlie should pay Rs.30.00 to alice": true,
	}
	for _, line := range summary.Details {
		if !want[line] {
			t.Errorf("unexpected instruction %q", line)
		}
	}
}

func TestGetSummaryEmptyGroup(t *testing.T) {
	store := newTestStore(t)
	svc := NewSummaryService(store)
	groupID := setupGroup(t, store, "alice")

	summary, err := svc.GetSummary(context.Background(), groupID)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if len(summary.Details) != 0 {
		t.Errorf("expected no settlements for empty group, got %v", summary.Details)
	}
}

func TestGetSummaryGroupNotFound(t *testing.T) {
	store := newTestStore(t)
	svc := NewSummaryService(store)

	_, err := svc.GetSummary(context.Background(), "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetSummaryIdempotent(t *testing.T) {
	store := newTestStore(t)
	transSvc := NewTransactionService(store)
	sumSvc := NewSummaryService(store)
	ctx := context.Background()
	groupID := setupGroup(t, store, "alice", "bob")

	_, err := transSvc.CreateTransaction(ctx, CreateTransactionInput{
		Name:         "Groceries",
		GroupID:      groupID,
		TotalAmount:  dec(t, "75.50"),
		Participants: []string{"alice", "bob"},
		Payers:       map[string]decimal.Decimal{"alice": dec(t, "75.50")},
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	first, err := sumSvc.GetSummary(ctx, groupID)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	second, err := sumSvc.GetSummary(ctx, groupID)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	for creditor, debts := range first.Pairwise {
		for debtor, amount := range debts {
			if !second.Pairwise[creditor][debtor].Equal(amount) {
				t.Errorf("pairwise[%s][%s] differs across runs: %s vs %s",
					creditor, debtor, amount, second.Pairwise[creditor][debtor])
			}
		}
	}
}
