package repositories

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrSelfFollow is returned when a chef tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow self")

	// ErrPartialUpdate is returned when one side of the follow edge was
	// written but the other side could not be, and rolling back the first
	// write failed as well. The graph is asymmetric until repaired.
	ErrPartialUpdate = errors.New("partial follow update: graph may be asymmetric")
)
