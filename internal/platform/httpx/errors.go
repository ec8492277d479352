// Package httpx provides JSON response utilities and the sentinel errors
// the domain layer maps onto HTTP statuses.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicate    = errors.New("duplicate entry")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// RespondError maps domain errors to RFC7807 problem responses. A missing
// entry and an entry owned by someone else produce the same 404 so that
// existence of other users' records never leaks. Unexpected errors return
// a generic 500; the detail belongs in the log, not the response.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid or missing credentials")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
