package extraction

import "errors"

// Domain errors for extraction operations.
var (
	ErrExtraction  = errors.New("extraction response malformed")
	ErrInvalidDate = errors.New("date expression not resolvable")
)
