package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNilStore is returned by NewCardService when no store is provided.
	ErrNilStore = errors.New("card store cannot be nil")

	// ErrCardRoundTrip is returned by CreateCard when the card text written
	// to the file would not parse back to the same card.
	ErrCardRoundTrip = errors.New("card text does not parse back to the same card")
)

// ServiceError is a custom error type for card service errors.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
