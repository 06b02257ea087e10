package ledger

// Accumulate folds a sequence of per-transaction payable maps into one net
// balance per user. Users absent from a map contribute zero for that
// transaction. If every input map is zero-sum, the output is zero-sum; that
// invariant is checked by Settle before a plan is computed.
func Accumulate(payables []PayableMap) PayableMap {
	balances := make(PayableMap)
	for _, m := range payables {
		for user, amount := range m {
			balances[user] = balances[user].Add(amount)
		}
	}
	return balances
}
