package ledger

import "testing"

func TestAccumulate(t *testing.T) {
	payables := []PayableMap{
		{"alice": dec("60"), "bob": dec("-30"), "charlie": dec("-30")},
		{"alice": dec("-20"), "bob": dec("20")},
		{"charlie": dec("10"), "dana": dec("-10")},
	}

	balances := Accumulate(payables)

	want := map[string]string{
		"alice":   "40",
		"bob":     "-10",
		"charlie": "-20",
		"dana":    "-10",
	}
	if len(balances) != len(want) {
		t.Fatalf("got %d users, want %d", len(balances), len(want))
	}
	for user, amount := range want {
		if !balances[user].Equal(dec(amount)) {
			t.Errorf("%s = %s, want %s", user, balances[user], amount)
		}
	}
	if !balances.Sum().IsZero() {
		t.Errorf("balances sum to %s, want 0", balances.Sum())
	}
}

func TestAccumulateEmpty(t *testing.T) {
	balances := Accumulate(nil)
	if len(balances) != 0 {
		t.Errorf("expected empty balance set, got %d entries", len(balances))
	}
}

func TestAccumulatePreservesZeroSum(t *testing.T) {
	// Zero-sum inputs must yield a zero-sum output regardless of overlap.
	payables := []PayableMap{
		{"a": dec("66.66"), "b": dec("-33.33"), "c": dec("-33.33")},
		{"b": dec("0.01"), "c": dec("-0.01")},
		{"a": dec("-50"), "d": dec("50")},
	}

	balances := Accumulate(payables)
	if !balances.Sum().IsZero() {
		t.Errorf("balances sum to %s, want 0", balances.Sum())
	}
}
