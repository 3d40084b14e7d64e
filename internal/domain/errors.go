package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// It wraps the more specific error.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownCardKind is returned when a persisted card type is not a known variant.
	ErrUnknownCardKind = errors.New("unknown card kind")
)
