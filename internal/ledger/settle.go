package ledger

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrInconsistentLedger is returned when a group's accumulated balances fail
// the zero-sum check. It signals corrupted transaction data upstream, not a
// condition that can be settled away.
var ErrInconsistentLedger = errors.New("balances do not sum to zero")

// epsilon is the absolute tolerance for the zero-sum check and for treating
// a residual balance as settled.
var epsilon = decimal.NewFromFloat(0.1)

// Plan is the result of simplifying a net balance set. Pairwise holds, for
// each creditor, the amount every debtor owes them; each entry has a negative
// mirror under the debtor's key so both directions can be read directly.
// Instructions is the human-readable rendering, one line per settlement.
type Plan struct {
	Pairwise     map[string]map[string]decimal.Decimal
	Instructions []string
}

// Settle runs the iterative minimum cash flow algorithm over the given net
// balances. Each round matches the largest creditor with the largest debtor
// and moves min(credit, debt) between them, zeroing at least one of the two,
// so the plan holds at most len(balances)-1 settlements. The loop runs until
// every residual balance is within epsilon.
//
// Ties on the extreme values break to the first user in sorted user-ID
// order, which keeps the output deterministic for a fixed input. Recorded
// amounts are rounded to 2 decimal places.
//
// Returns ErrInconsistentLedger without computing a plan when the balances
// sum to epsilon or more in absolute value.
func Settle(balances PayableMap, names map[string]string) (*Plan, error) {
	if sum := balances.Sum(); sum.Abs().GreaterThanOrEqual(epsilon) {
		return nil, fmt.Errorf("%w: residual %s", ErrInconsistentLedger, sum)
	}

	// Work on a sorted copy; the caller's map is never mutated.
	users := make([]string, 0, len(balances))
	for user := range balances {
		users = append(users, user)
	}
	sort.Strings(users)

	working := make(PayableMap, len(balances))
	for user, amount := range balances {
		working[user] = amount
	}

	plan := &Plan{Pairwise: make(map[string]map[string]decimal.Decimal)}
	for {
		creditor, debtor := pickExtremes(users, working)
		if working[creditor].LessThanOrEqual(epsilon) && working[debtor].Neg().LessThanOrEqual(epsilon) {
			break // all residuals within tolerance
		}

		amount := decimal.Min(working[creditor], working[debtor].Neg())
		if !amount.IsPositive() {
			break
		}
		working[creditor] = working[creditor].Sub(amount)
		working[debtor] = working[debtor].Add(amount)

		rounded := amount.Round(2)
		record(plan.Pairwise, creditor, debtor, rounded)
		record(plan.Pairwise, debtor, creditor, rounded.Neg())
		plan.Instructions = append(plan.Instructions,
			fmt.Sprintf("%s should pay Rs.%s to %s",
				displayName(debtor, names), rounded.StringFixed(2), displayName(creditor, names)))
	}

	return plan, nil
}

// pickExtremes returns the users holding the most positive and most negative
// balances, scanning in the given order. The tolerance is not applied here:
// a balance above epsilon on one side must still be matched against the
// extreme of the other side even when that extreme is itself within
// tolerance. Empty strings only for an empty balance set.
func pickExtremes(users []string, balances PayableMap) (creditor, debtor string) {
	for _, user := range users {
		b := balances[user]
		if creditor == "" || b.GreaterThan(balances[creditor]) {
			creditor = user
		}
		if debtor == "" || b.LessThan(balances[debtor]) {
			debtor = user
		}
	}
	return creditor, debtor
}

func record(pairwise map[string]map[string]decimal.Decimal, from, to string, amount decimal.Decimal) {
	if pairwise[from] == nil {
		pairwise[from] = make(map[string]decimal.Decimal)
	}
	pairwise[from][to] = pairwise[from][to].Add(amount)
}

// displayName resolves a user ID to a display name, falling back to the raw
// ID when no name is known.
func displayName(userID string, names map[string]string) string {
	if name, ok := names[userID]; ok && name != "" {
		return name
	}
	return userID
}
