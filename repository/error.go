package repository

import "errors"

var (
	// ErrNotFound no item satisfies the specification
	ErrNotFound = errors.New("repository: not found")
)
