package runlog

import "errors"

// ErrInvalidInput indicates invalid input for run log operations.
var ErrInvalidInput = errors.New("invalid run log input")
