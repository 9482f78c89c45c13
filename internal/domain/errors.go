package domain

import "errors"

// Sentinel errors for the API error taxonomy. Handlers map these to
// 400/404; anything else becomes a generic 500.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)
