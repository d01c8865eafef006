package services

import "errors"

var (
	// ErrNotFound is returned when an engagement, booking, mentor or user id
	// does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller is not a participant of the
	// engagement it is trying to mutate.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition is returned when a guard fails: wrong current
	// status, past date, exhausted quota, unavailable slot. Wrapped with a
	// specific reason.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrInvalidInput covers malformed arguments (unknown status, rating out
	// of range).
	ErrInvalidInput = errors.New("invalid input")
	// ErrLedgerViolation indicates a release or debit exceeded the wallet
	// bound. This is a bookkeeping bug upstream, not a user error.
	ErrLedgerViolation = errors.New("ledger violation")
	// ErrReconciliationRequired is returned when a state persist failed after
	// its money movement already committed. The operation must not be retried;
	// the transaction log holds the data needed to reconcile by hand.
	ErrReconciliationRequired = errors.New("state persist failed after ledger mutation; manual reconciliation required")
)
