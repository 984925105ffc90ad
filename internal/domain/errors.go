package domain

import "errors"

// Domain-specific errors for card state and reset operations.
var (
	// Lookup errors
	ErrCardNotFound  = errors.New("card not found")
	ErrBoardNotFound = errors.New("board not found")

	// Store errors
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrStoreUnavailable       = errors.New("store unavailable")

	// Validation errors
	ErrInvalidState     = errors.New("invalid card state")
	ErrInvalidResetTime = errors.New("invalid reset time")
	ErrInvalidTitle     = errors.New("invalid card title")
	ErrInvalidDetails   = errors.New("invalid card details")
	ErrInvalidPosition  = errors.New("invalid card position")
	ErrInvalidBoardName = errors.New("invalid board name")
)
