package domain

import "errors"

var (
	// ErrNotFound marks an unknown submission or campaign id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition marks an operation not legal for the current
	// submission status. It is surfaced, never silently coerced.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrValidation marks rejectable caller input, e.g. an empty denial reason.
	ErrValidation = errors.New("validation failed")
	// ErrConcurrentModification marks a lost compare-and-swap race. Callers
	// may retry with fresh state; the sweep treats it as already resolved.
	ErrConcurrentModification = errors.New("concurrent modification")
	// ErrConfiguration marks a campaign whose type-specific required fields
	// are missing or inconsistent. Fatal for that campaign's processing only.
	ErrConfiguration = errors.New("campaign misconfigured")
)
