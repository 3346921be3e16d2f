package audit

// Record is a single ordered (stage, fields) emission (§4.4).
type Record struct {
	Stage  Stage
	Fields Fields
}

// Sink receives audit records synchronously from the runtime thread. A sink
// must tolerate repeated CursorMoved/FocusChanged/etc. records without side
// effects on the runtime (§4.4) and must return promptly: the bus calls
// sinks inline, on the coordinator's single thread.
type Sink interface {
	Emit(rec Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(rec Record) error

func (f SinkFunc) Emit(rec Record) error { return f(rec) }
