package resources

import "errors"

var (
	// ErrAlreadyExists is returned by Insert when a value is already
	// registered for the requested type tag.
	ErrAlreadyExists = errors.New("resources: already exists")
	// ErrMissing is returned by Get when no value is registered for the
	// requested type tag.
	ErrMissing = errors.New("resources: missing")
	// ErrTypeMismatch is returned by Get when a value is registered under
	// the tag but does not match the requested type.
	ErrTypeMismatch = errors.New("resources: type mismatch")
	// ErrPoisoned is returned when the internal lock was left in an
	// inconsistent state by a panicking writer.
	ErrPoisoned = errors.New("resources: poisoned")
)
