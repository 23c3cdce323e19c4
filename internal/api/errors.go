package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jswann/ladder-api/internal/service/duel"
	"github.com/jswann/ladder-api/internal/service/list"
	"github.com/jswann/ladder-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, list.ErrListNotFound),
		errors.Is(err, duel.ErrListNotFound),
		errors.Is(err, duel.ErrItemNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, list.ErrListNameTaken),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, list.ErrInvalidList),
		errors.Is(err, duel.ErrItemsNotDistinct),
		errors.Is(err, duel.ErrListMismatch),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Special cases
	case errors.Is(err, duel.ErrNotEnoughItems):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, list.ErrListNotFound),
		errors.Is(err, duel.ErrListNotFound):
		return "List not found"

	case errors.Is(err, duel.ErrItemNotFound):
		return "Item not found"

	// Conflict errors
	case errors.Is(err, list.ErrListNameTaken):
		return "A list with this name already exists"

	// Bad request errors
	case errors.Is(err, list.ErrInvalidList):
		return "Invalid list data"

	case errors.Is(err, duel.ErrItemsNotDistinct):
		return "Winner and loser must be different items"

	case errors.Is(err, duel.ErrListMismatch):
		return "Item does not belong to this list"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Not enough items is handled separately with StatusNoContent

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Validator errors look like:
	// "Key: 'CreateListRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
