package audit

import "go.uber.org/multierr"

// Bus fans an ordered stream of records out to every registered sink. All
// emission happens synchronously on the caller's goroutine (the runtime
// thread, per §5): there is no buffering or async dispatch here, only in
// BootstrapAudit.
type Bus struct {
	sinks []Sink
}

// NewBus creates an audit bus with no sinks registered.
func NewBus() *Bus {
	return &Bus{}
}

// Register adds sink to the bus. Sinks are called in registration order.
func (b *Bus) Register(sink Sink) {
	b.sinks = append(b.sinks, sink)
}

// Emit sends (stage, fields) to every registered sink in order, aggregating
// any sink errors rather than aborting after the first failure: one broken
// sink must not silence the others.
func (b *Bus) Emit(stage Stage, fields Fields) error {
	rec := Record{Stage: stage, Fields: fields}
	var errs error
	for _, sink := range b.sinks {
		if err := sink.Emit(rec); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Len reports the number of registered sinks.
func (b *Bus) Len() int {
	return len(b.sinks)
}
