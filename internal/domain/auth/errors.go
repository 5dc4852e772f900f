package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password
	// so login failures do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailAlreadyExists indicates a duplicate registration.
	ErrEmailAlreadyExists = errors.New("email already registered")
)
