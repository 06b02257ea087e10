// Package ledger implements the core balance math: building per-transaction
// payable maps, accumulating them into net balances, and simplifying net
// balances into a minimal set of settlements.
//
// Sign convention (used consistently across this package): a positive amount
// means the user is a net contributor and is owed money by the group; a
// negative amount means the user owes money.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PayableMap maps a user ID to their signed net amount for one transaction.
type PayableMap map[string]decimal.Decimal

// BuildPayables computes the payable map for a single transaction: each
// participant is charged an equal share of total, and each payer is credited
// their contribution. A user who is both payer and participant gets the two
// combined on the same key.
//
// The per-person share is total/n rounded to 2 decimal places; the first
// participant absorbs the rounding remainder so the resulting map always
// sums to exactly zero. Callers must have validated that the payer
// contributions sum to total; BuildPayables does not re-check.
func BuildPayables(total decimal.Decimal, payers map[string]decimal.Decimal, participants []string) (PayableMap, error) {
	n := len(participants)
	if n == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("total amount must be positive, got %s", total)
	}

	share := total.DivRound(decimal.NewFromInt(int64(n)), 2)
	first := total.Sub(share.Mul(decimal.NewFromInt(int64(n - 1))))

	payables := make(PayableMap, n)
	for i, p := range participants {
		if i == 0 {
			payables[p] = first.Neg()
		} else {
			payables[p] = share.Neg()
		}
	}
	for p, amount := range payers {
		payables[p] = payables[p].Add(amount)
	}
	return payables, nil
}

// Sum returns the total of all entries in the map. Zero for a well-formed
// payable map.
func (m PayableMap) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, amount := range m {
		sum = sum.Add(amount)
	}
	return sum
}
