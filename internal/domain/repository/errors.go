package repository

import "errors"

// Store-level failure taxonomy. Infrastructure maps driver errors to these;
// flows wrap them into apperr kinds before they cross the boundary.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrConnection   = errors.New("store connection failed")
)
