package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrMissingInput  = errors.New("missing required input")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownSense  = errors.New("unknown sense identifier")
)
