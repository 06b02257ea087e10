package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and CreatedAt", func(t *testing.T) {
		user := &models.User{Name: "Alice", Email: "alice@example.com"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("GetUser round-trips groups in order", func(t *testing.T) {
		user := &models.User{ID: "u-bob", Name: "Bob", Email: "bob@example.com"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		for _, groupID := range []string{"g1", "g2", "g3"} {
			if err := store.AppendUserGroup(ctx, "u-bob", groupID); err != nil {
				t.Fatalf("AppendUserGroup failed: %v", err)
			}
		}

		got, err := store.GetUser(ctx, "u-bob")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		want := []string{"g1", "g2", "g3"}
		if len(got.Groups) != len(want) {
			t.Fatalf("groups = %v, want %v", got.Groups, want)
		}
		for i := range want {
			if got.Groups[i] != want[i] {
				t.Errorf("groups[%d] = %s, want %s", i, got.Groups[i], want[i])
			}
		}
	})

	t.Run("GetUser not found", func(t *testing.T) {
		_, err := store.GetUser(ctx, "nonexistent")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AppendUserGroup fails for unknown user", func(t *testing.T) {
		err := store.AppendUserGroup(ctx, "nonexistent", "g1")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetUsersByIDs omits missing users", func(t *testing.T) {
		users, err := store.GetUsersByIDs(ctx, []string{"u-bob", "nonexistent"})
		if err != nil {
			t.Fatalf("GetUsersByIDs failed: %v", err)
		}
		if len(users) != 1 {
			t.Fatalf("got %d users, want 1", len(users))
		}
		if users["u-bob"].Name != "Bob" {
			t.Errorf("name = %s, want Bob", users["u-bob"].Name)
		}
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup round-trips members in order", func(t *testing.T) {
		group := &models.Group{
			Name:    "Roommates",
			Members: []string{"u3", "u1", "u2"},
			Details: "flat 4B",
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("expected group ID to be generated")
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Roommates" || got.Details != "flat 4B" {
			t.Errorf("got %q/%q, want Roommates/flat 4B", got.Name, got.Details)
		}
		want := []string{"u3", "u1", "u2"}
		for i := range want {
			if got.Members[i] != want[i] {
				t.Errorf("members[%d] = %s, want %s", i, got.Members[i], want[i])
			}
		}
	})

	t.Run("AppendGroupTransaction preserves order", func(t *testing.T) {
		group := &models.Group{Name: "Trip", Members: []string{"u1"}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		for _, transID := range []string{"t1", "t2", "t3"} {
			if err := store.AppendGroupTransaction(ctx, group.ID, transID); err != nil {
				t.Fatalf("AppendGroupTransaction failed: %v", err)
			}
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		want := []string{"t1", "t2", "t3"}
		if len(got.Transactions) != len(want) {
			t.Fatalf("transactions = %v, want %v", got.Transactions, want)
		}
		for i := range want {
			if got.Transactions[i] != want[i] {
				t.Errorf("transactions[%d] = %s, want %s", i, got.Transactions[i], want[i])
			}
		}
	})

	t.Run("AppendGroupTransaction fails for unknown group", func(t *testing.T) {
		err := store.AppendGroupTransaction(ctx, "nonexistent", "t1")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetGroup not found", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTransactions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTransaction round-trips amounts exactly", func(t *testing.T) {
		trans := &models.Transaction{
			Name:         "Dinner",
			GroupID:      "g1",
			TotalAmount:  mustDec(t, "100.01"),
			Participants: []string{"alice", "bob", "charlie"},
			Payers: map[string]decimal.Decimal{
				"alice": mustDec(t, "60.01"),
				"bob":   mustDec(t, "40"),
			},
			Payables: map[string]decimal.Decimal{
				"alice":   mustDec(t, "26.66"),
				"bob":     mustDec(t, "6.66"),
				"charlie": mustDec(t, "-33.32"),
			},
			Details: "birthday",
		}
		if err := store.CreateTransaction(ctx, trans); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if trans.ID == "" {
			t.Error("expected transaction ID to be generated")
		}

		got, err := store.GetTransaction(ctx, trans.ID)
		if err != nil {
			t.Fatalf("GetTransaction failed: %v", err)
		}
		if !got.TotalAmount.Equal(mustDec(t, "100.01")) {
			t.Errorf("total = %s, want 100.01", got.TotalAmount)
		}
		if len(got.Participants) != 3 || got.Participants[0] != "alice" {
			t.Errorf("participants = %v", got.Participants)
		}
		for user, want := range trans.Payers {
			if !got.Payers[user].Equal(want) {
				t.Errorf("payer %s = %s, want %s", user, got.Payers[user], want)
			}
		}
		for user, want := range trans.Payables {
			if !got.Payables[user].Equal(want) {
				t.Errorf("payable %s = %s, want %s", user, got.Payables[user], want)
			}
		}
	})

	t.Run("GetTransaction not found", func(t *testing.T) {
		_, err := store.GetTransaction(ctx, "nonexistent")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetTransactionsByIDs fails on any missing ID", func(t *testing.T) {
		trans := &models.Transaction{
			Name:         "Cab",
			GroupID:      "g1",
			TotalAmount:  mustDec(t, "20"),
			Participants: []string{"alice"},
			Payers:       map[string]decimal.Decimal{"alice": mustDec(t, "20")},
			Payables:     map[string]decimal.Decimal{"alice": mustDec(t, "0")},
		}
		if err := store.CreateTransaction(ctx, trans); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		got, err := store.GetTransactionsByIDs(ctx, []string{trans.ID})
		if err != nil {
			t.Fatalf("GetTransactionsByIDs failed: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Cab" {
			t.Errorf("got %v", got)
		}

		_, err = store.GetTransactionsByIDs(ctx, []string{trans.ID, "nonexistent"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
