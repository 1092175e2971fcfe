package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrStagePanic       = errors.New("analysis stage panicked")
	ErrMarshal          = errors.New("marshal result")
)
