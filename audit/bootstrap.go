package audit

import "go.uber.org/multierr"

// BootstrapAudit buffers every record until release fires, then flushes the
// buffer in order and passes subsequent records straight through. It wraps
// an Emitter (normally a *Bus) rather than replacing it, so callers keep the
// same emission call regardless of gating state (§4.4).
type BootstrapAudit struct {
	target   Emitter
	override Stage
	buffer   []Record
	released bool
}

// Emitter is the subset of *Bus that BootstrapAudit needs; it exists so
// tests can substitute a recording stub without a real Bus.
type Emitter interface {
	Emit(stage Stage, fields Fields) error
}

// NewBootstrapAudit wraps target. Buffering releases when UserReady fires,
// or earlier if override is non-empty and fires first.
func NewBootstrapAudit(target Emitter, override Stage) *BootstrapAudit {
	return &BootstrapAudit{target: target, override: override}
}

// Emit buffers the record while gated, or forwards it (flushing the buffer
// first, if this call is the one that releases gating).
func (g *BootstrapAudit) Emit(stage Stage, fields Fields) error {
	if g.released {
		return g.target.Emit(stage, fields)
	}

	g.buffer = append(g.buffer, Record{Stage: stage, Fields: fields})

	if stage == UserReady || (g.override != "" && stage == g.override) {
		return g.release()
	}
	return nil
}

func (g *BootstrapAudit) release() error {
	g.released = true
	buffered := g.buffer
	g.buffer = nil

	var errs error
	for _, rec := range buffered {
		if err := g.target.Emit(rec.Stage, rec.Fields); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Released reports whether buffering has released.
func (g *BootstrapAudit) Released() bool {
	return g.released
}
