package service

import "errors"

// Error taxonomy surfaced by the services. Storage lookups additionally
// return storage.ErrNotFound and the summary path returns
// ledger.ErrInconsistentLedger; handlers match with errors.Is.
var (
	// ErrValidation marks malformed or missing request fields, rejected
	// before any persistence or computation.
	ErrValidation = errors.New("invalid parameters")

	// ErrMembership marks a participant or payer that is not a member of
	// the referenced group.
	ErrMembership = errors.New("not a member of the group")

	// ErrAmountMismatch marks payer contributions that do not sum to the
	// declared total amount.
	ErrAmountMismatch = errors.New("payer contributions do not sum to total amount")
)
