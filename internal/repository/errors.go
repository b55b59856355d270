package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// unique constraint violation
	ErrDuplicateKey = errors.New("duplicate key")
)
