package services

import "errors"

// Failure taxonomy shared by all marketplace flows. Handlers map these to
// HTTP statuses; anything else wrapped out of a repository is treated as a
// store failure.
var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidLogin      = errors.New("invalid email or password")
)
