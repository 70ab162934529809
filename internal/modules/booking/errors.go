package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("booking not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// ValidationError carries the per-field error map produced by Validate.
// It matches ErrValidation under errors.Is so handlers can switch on the
// sentinel and still read the fields.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string { return "validation error" }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
