package plugin

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/oodx/room/event"
	"github.com/oodx/room/rterr"
)

// Pipeline dispatches lifecycle and event hooks over a Registry in priority
// order (§4.5). It holds no runtime state of its own; every side effect
// flows through the RuntimeContext the coordinator passes in.
type Pipeline struct {
	registry *Registry
}

// New builds a Pipeline over registry.
func New(registry *Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// Init runs every Initializer.Init in priority order, once, during Boot.
func (p *Pipeline) Init(ctx RuntimeContext) error {
	var errs error
	for _, plug := range p.registry.ordered() {
		if h, ok := plug.(Initializer); ok {
			if err := h.Init(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("plugin init: %w", err))
			}
		}
	}
	return errs
}

// Boot runs every BootHandler.OnBoot in priority order.
func (p *Pipeline) Boot(ctx RuntimeContext) error {
	var errs error
	for _, plug := range p.registry.ordered() {
		if h, ok := plug.(BootHandler); ok {
			if err := h.OnBoot(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("plugin on_boot: %w", err))
			}
		}
	}
	return errs
}

// UserReady runs every UserReadyHandler.OnUserReady in priority order.
func (p *Pipeline) UserReady(ctx RuntimeContext) error {
	var errs error
	for _, plug := range p.registry.ordered() {
		if h, ok := plug.(UserReadyHandler); ok {
			if err := h.OnUserReady(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("plugin on_user_ready: %w", err))
			}
		}
	}
	return errs
}

// UserEnd runs every UserEndHandler.OnUserEnd in priority order.
func (p *Pipeline) UserEnd(ctx RuntimeContext) error {
	var errs error
	for _, plug := range p.registry.ordered() {
		if h, ok := plug.(UserEndHandler); ok {
			if err := h.OnUserEnd(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("plugin on_user_end: %w", err))
			}
		}
	}
	return errs
}

// Dispatch runs OnTick handlers (for Tick events) and then OnEvent in
// priority order, stopping at the first plugin that returns event.Consumed.
// It returns the final Flow and any error the consuming (or a preceding)
// plugin reported.
func (p *Pipeline) Dispatch(ctx RuntimeContext, evt event.Event) (event.Flow, error) {
	var errs error

	if evt.Kind == event.TickKind {
		for _, plug := range p.registry.ordered() {
			if h, ok := plug.(TickHandler); ok {
				if err := h.OnTick(ctx); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("plugin on_tick: %w", err))
				}
			}
		}
	}

	for _, plug := range p.registry.ordered() {
		h, ok := plug.(EventHandler)
		if !ok {
			continue
		}
		flow, err := h.OnEvent(ctx, evt)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("plugin on_event: %w", err))
		}
		if flow == event.Consumed {
			return event.Consumed, errs
		}
	}
	return event.NotConsumed, errs
}

// BeforeRender runs every BeforeRenderHandler in priority order.
func (p *Pipeline) BeforeRender(ctx RuntimeContext) error {
	var errs error
	for _, plug := range p.registry.ordered() {
		if h, ok := plug.(BeforeRenderHandler); ok {
			if err := h.BeforeRender(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("plugin before_render: %w", err))
			}
		}
	}
	return errs
}

// AfterRender runs every AfterRenderHandler in priority order.
func (p *Pipeline) AfterRender(ctx RuntimeContext) error {
	var errs error
	for _, plug := range p.registry.ordered() {
		if h, ok := plug.(AfterRenderHandler); ok {
			if err := h.AfterRender(ctx); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("plugin after_render: %w", err))
			}
		}
	}
	return errs
}

// FocusChanged runs every FocusChangeHandler in priority order.
func (p *Pipeline) FocusChanged(ctx RuntimeContext, from, to *string) error {
	var errs error
	for _, plug := range p.registry.ordered() {
		if h, ok := plug.(FocusChangeHandler); ok {
			if err := h.OnFocusChange(ctx, from, to); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("plugin on_focus_change: %w", err))
			}
		}
	}
	return errs
}

// CursorChanged runs every CursorChangeHandler in priority order.
func (p *Pipeline) CursorChanged(ctx RuntimeContext, moved, shown, hidden bool) error {
	var errs error
	for _, plug := range p.registry.ordered() {
		if h, ok := plug.(CursorChangeHandler); ok {
			if err := h.OnCursorChange(ctx, moved, shown, hidden); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("plugin on_cursor_change: %w", err))
			}
		}
	}
	return errs
}

// RecoverOrFatal offers err to every ErrorHandler in priority order; any
// handler may flip err.Recoverable to true. It returns once every handler
// has run, regardless of how many flipped it, matching "any hook may set
// recoverable = true" (§4.7) rather than stopping at the first.
func (p *Pipeline) RecoverOrFatal(ctx RuntimeContext, rerr *rterr.RuntimeError) error {
	var errs error
	for _, plug := range p.registry.ordered() {
		if h, ok := plug.(ErrorHandler); ok {
			if err := h.OnError(ctx, rerr); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("plugin on_error: %w", err))
			}
		}
	}
	return errs
}
