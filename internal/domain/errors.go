package domain

import "errors"

var (
	// ErrInvalidPeriod is returned when a month lies outside 1..12.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrInvalidRange is returned when a date range starts after it ends.
	ErrInvalidRange = errors.New("invalid range")
	// ErrNotFound covers missing rows and rows owned by another user.
	ErrNotFound = errors.New("not found")
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation error")
	// ErrConflict signals a uniqueness violation, e.g. a taken email.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized signals bad credentials or an inactive user.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError describes a rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
