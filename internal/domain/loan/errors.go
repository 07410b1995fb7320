package loan

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced listing, message or
	// transaction does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned for missing or malformed identifiers.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState is returned when the presented message's current
	// type does not match the operation's precondition, including
	// replay of an already-consumed message.
	ErrInvalidState = errors.New("message type does not match required protocol state")

	// ErrSelfRequest is returned when a borrower requests against their
	// own lend listing.
	ErrSelfRequest = errors.New("borrow and lend belong to the same party")

	// ErrDuplicateSubmission is returned when a contract has already
	// been sent for the transaction.
	ErrDuplicateSubmission = errors.New("contract already sent for this transaction")

	// ErrUnauthorized is returned when the acting user is not the
	// recipient of the presented message.
	ErrUnauthorized = errors.New("message is not addressed to the acting user")
)

// ErrConcurrencyConflict is returned when a conditional update lost a
// race. It wraps ErrInvalidState: callers observe the protocol-level
// outcome while logs keep the distinction.
var ErrConcurrencyConflict = fmt.Errorf("conditional update lost a concurrent race: %w", ErrInvalidState)
