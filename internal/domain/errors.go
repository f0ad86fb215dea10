package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the services. Callers match with errors.Is.
var (
	// ErrValidation means caller-supplied data broke a field constraint.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateName means (owner, name) is already taken.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrNotFound means a referenced id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCategoryInUse means a category still has items pointing at it.
	ErrCategoryInUse = errors.New("category in use")

	// ErrTargetNotFound means a move referenced a missing target category.
	ErrTargetNotFound = errors.New("target category not found")

	// ErrTransactionFailure wraps any persistence error raised inside a
	// transactional body. The transaction has been rolled back.
	ErrTransactionFailure = errors.New("transaction failed")

	ErrItemNotFound     = fmt.Errorf("%w: item", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
)

// Validationf builds an ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
