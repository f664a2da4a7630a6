package gallery

import "errors"

var (
	// ErrInvalidStatus indicates an unrecognized gallery status.
	ErrInvalidStatus = errors.New("invalid gallery status")
	// ErrBackwardTransition indicates an attempt to move the status backward.
	ErrBackwardTransition = errors.New("gallery status can only move forward")
)
