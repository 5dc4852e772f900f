package transaction

import "errors"

var (
	// ErrTransactionNotFound is returned when a ledger row doesn't exist or
	// belongs to another shop's customer
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCustomerNotFound is returned when the target customer doesn't exist
	// or belongs to another shop
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInvalidAmount is returned when amount is <= 0
	ErrInvalidAmount = errors.New("invalid amount: must be greater than 0")

	ErrInternal = errors.New("internal error")
)
