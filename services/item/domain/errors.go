package domain

import "errors"

// Sentinel errors for the item catalog. Use errors.Is() to check these.
var (
	// ErrInvalidItem indicates a catalog row violates the item invariants.
	ErrInvalidItem = errors.New("invalid item")
)
