package domain

import "errors"

var (
	// ErrUnknownUnit is returned when a unit string is not in the dimension table
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrConversionUnsupported is returned when a cross-dimension conversion
	// is attempted without a density
	ErrConversionUnsupported = errors.New("conversion unsupported without density")

	// ErrNegativeAmount is returned when a quantity amount is negative
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrItemNotFound is returned when a pantry item id does not exist for the owner
	ErrItemNotFound = errors.New("pantry item not found")

	// ErrInsufficientStock is returned when a conditional decrement predicate fails
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrTransactionConflict is returned when the backing store aborts a
	// deduction batch on a serialization conflict; callers may retry
	ErrTransactionConflict = errors.New("transaction conflict")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrFoodDataUnavailable is returned when the external food database request fails
	ErrFoodDataUnavailable = errors.New("food database request failed")

	// ErrCategoryNotFound is returned when the external food database has no
	// category for a name
	ErrCategoryNotFound = errors.New("category not found")
)
