package shared

import "errors"

var (
	// ErrSessionMissing indicates a handler ran without the session middleware.
	ErrSessionMissing = errors.New("session missing")
)
