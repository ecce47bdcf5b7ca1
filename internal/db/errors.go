package db

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is absent or owned by another tenant.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write would break a uniqueness rule.
	ErrConflict = errors.New("record conflicts with an existing record")
	// ErrValidation is returned for input the store cannot persist at all.
	ErrValidation = errors.New("invalid record")
	// ErrBackend wraps faults raised by the storage medium itself.
	ErrBackend = errors.New("storage backend failure")
	// ErrPartial is returned when a multi-step write applied only some steps.
	ErrPartial = errors.New("operation partially applied")
)

func notFound(entity, id string) error {
	return fmt.Errorf("%s %q: %w", entity, id, ErrNotFound)
}

func conflict(entity, field, value string) error {
	return fmt.Errorf("%s %s %q: %w", entity, field, value, ErrConflict)
}

func invalid(entity, reason string) error {
	return fmt.Errorf("%s: %s: %w", entity, reason, ErrValidation)
}

func backendErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrBackend, err)
}

// partial reports a child write failure after the parent was written. When the
// compensating delete also failed, both causes are kept.
func partial(op string, cause, compensate error) error {
	if compensate != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrPartial, errors.Join(cause, compensate))
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPartial, cause)
}
