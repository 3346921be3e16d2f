package zone

import "errors"

var (
	// ErrNotFound is returned when an operation targets a zone id the
	// registry has no state for.
	ErrNotFound = errors.New("zone: not found")
)
