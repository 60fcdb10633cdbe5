package services

import (
	"errors"
	"fmt"

	"catalog-service/internal/repository"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrUniquenessConflict = errors.New("uniqueness conflict")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInsufficientFunds  = errors.New("insufficient funds")
)

// FieldError is a validation failure tied to one input field
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// translate maps repository errors to service errors, naming the entity involved
func translate(err error, entity string, id interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s %v", ErrNotFound, entity, id)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %s: %v", ErrUniquenessConflict, entity, err)
	case errors.Is(err, repository.ErrInvalidOrdering):
		return &FieldError{Field: "ordering", Message: err.Error()}
	default:
		return err
	}
}
