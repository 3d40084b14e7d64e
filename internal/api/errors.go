package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/phrazzld/scry-cards/internal/domain"
	"github.com/phrazzld/scry-cards/internal/extract"
	"github.com/phrazzld/scry-cards/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the error itself.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, extract.ErrMalformedCard),
		errors.Is(err, domain.ErrClozeSpanMissing):
		return http.StatusUnprocessableEntity

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusUnprocessableEntity:
		return "A card file contains a malformed card"
	case http.StatusBadRequest:
		return "Invalid request"
	case http.StatusNotFound:
		return "Card not found"
	case http.StatusServiceUnavailable:
		return "Request cancelled"
	default:
		return "An unexpected error occurred"
	}
}
