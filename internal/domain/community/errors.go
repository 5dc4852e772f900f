package community

import "errors"

var (
	// ErrInternal indicates an unexpected storage failure.
	ErrInternal = errors.New("internal error")
)
