package runtime

import "errors"

var (
	// ErrAlreadyBootstrapped is returned by Bootstrap if called more than
	// once on the same Coordinator.
	ErrAlreadyBootstrapped = errors.New("runtime: already bootstrapped")

	// ErrNotBootstrapped is returned by Step/RunScripted/RunSimulated if
	// called before Bootstrap. A Bootstrap that failed still counts as
	// called; the session is then terminated.
	ErrNotBootstrapped = errors.New("runtime: not bootstrapped")

	// ErrTerminated is returned by Step if the coordinator has already
	// reached Close or FatalClose.
	ErrTerminated = errors.New("runtime: session already terminated")
)
