package form

import "errors"

var (
	// ErrEmptyFieldName is returned when a field is added without a name.
	ErrEmptyFieldName = errors.New("form: field name is required")
	// ErrDuplicateField is returned when a field name is already registered.
	ErrDuplicateField = errors.New("form: duplicate field")
	// ErrUnknownField is returned when an operation names a missing field.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrNilRule is returned when AddRule receives nil.
	ErrNilRule = errors.New("form: rule is nil")
	// ErrOwnershipConflict is returned when two rules claim the same error on
	// the same field.
	ErrOwnershipConflict = errors.New("form: error already owned by another rule")
)
