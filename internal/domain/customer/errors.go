package customer

import "errors"

var (
	// ErrCustomerNotFound is returned when a customer doesn't exist or
	// belongs to another shop
	ErrCustomerNotFound = errors.New("customer not found")

	ErrInternal = errors.New("internal error")
)
