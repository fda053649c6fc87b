package refdata

import (
	"errors"
	"net/http"
)

// Gateway errors. ErrNotFound and ErrAmbiguous describe the input, not the
// store; any other error from a lookup is a transport failure.
var (
	ErrNotFound  = errors.New("no matching record")
	ErrAmbiguous = errors.New("multiple matching records")
)

// MapHTTPStatus maps gateway errors to HTTP status codes for the browse API.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrAmbiguous) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
