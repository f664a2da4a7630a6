package shotlist

import "errors"

var (
	// ErrUnknownEventType indicates no archetypes are registered for the event type.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrInvalidShotCountTarget indicates a non-positive shot count target.
	ErrInvalidShotCountTarget = errors.New("shot count target must be positive")
	// ErrEmptyCatalog indicates a catalog file with no event templates.
	ErrEmptyCatalog = errors.New("catalog has no event templates")
)
