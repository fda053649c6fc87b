package remote

import "errors"

// Domain errors for remote submission operations.
var (
	ErrAuth     = errors.New("login did not yield a token")
	ErrRejected = errors.New("submission rejected")
)
