package models

import "github.com/shopspring/decimal"

// Transaction represents one shared expense recorded against a group.
// Immutable once created.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// Name is the human-readable label (e.g., "Dinner", "Cab fare").
	Name string

	// GroupID is the group this transaction belongs to.
	GroupID string

	// TotalAmount is the full cost of the transaction. Always positive.
	TotalAmount decimal.Decimal

	// Participants is the list of user IDs sharing the cost equally.
	Participants []string

	// Payers maps user ID to the amount that user actually paid.
	// The values sum to TotalAmount exactly; validated before creation.
	Payers map[string]decimal.Decimal

	// Payables is the derived signed map for this transaction:
	// positive = owed money, negative = owes money. Sums to zero.
	// Computed once at creation and stored with the record.
	Payables map[string]decimal.Decimal

	// Details is optional free-text about the transaction.
	Details string

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	CreatedAt int64
}
