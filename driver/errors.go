package driver

import "errors"

// errInterrupted is returned by Run when the process receives SIGINT/SIGTERM
// while blocked waiting for the next event. It does not pass through the
// coordinator's own teardown (there is no RuntimeEvent for an OS signal, per
// §3's RuntimeEvent vocabulary) — callers should still call Finalize to
// restore terminal modes, matching how an unrecoverable key-reader error is
// handled.
var errInterrupted = errors.New("driver: interrupted")

// ErrInterrupted reports whether err is the interrupt sentinel Run returns
// on SIGINT/SIGTERM.
func ErrInterrupted(err error) bool {
	return errors.Is(err, errInterrupted)
}
