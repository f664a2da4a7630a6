package scoring

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingMetric indicates a required raw metric was absent.
	ErrMissingMetric = errors.New("missing required metric")
	// ErrMalformedMetric indicates a raw metric was not a usable number.
	ErrMalformedMetric = errors.New("malformed metric")
)

// Error describes a scoring failure for a single photo's metrics. Callers
// recover from it per photo; it never aborts a whole batch.
type Error struct {
	Metric string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("metric %q: %v", e.Metric, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
