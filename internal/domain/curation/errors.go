package curation

import "errors"

var (
	// ErrRunInProgress indicates another curation run holds the gallery lock.
	ErrRunInProgress = errors.New("curation run already in progress")
	// ErrCurationAborted indicates a whole-run failure; nothing was persisted.
	ErrCurationAborted = errors.New("curation aborted")
	// ErrGalleryNotFound indicates the target gallery doesn't exist.
	ErrGalleryNotFound = errors.New("gallery not found")
)
