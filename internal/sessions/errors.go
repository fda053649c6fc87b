package sessions

import (
	"errors"
	"net/http"

	"github.com/jmallard/manifest/internal/remote"
)

// Domain errors for session operations.
var (
	ErrNotFound = errors.New("session not found")
	ErrNoItems  = errors.New("no items supplied")
	ErrBusy     = errors.New("session is processing another batch")
)

// MapHTTPStatus maps session domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrNoItems) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrBusy) {
		return http.StatusConflict
	}
	if errors.Is(err, remote.ErrAuth) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
