package focus

import "github.com/oodx/room/zone"

// Target identifies the currently focused zone and, optionally, a
// component within it.
type Target struct {
	Zone      zone.ID
	Component string // empty means "no component", not a missing value
}

// Manager holds the single active Target, plus which Controller owns it.
// It is stored in the shared resource map (package resources) as the one
// focus singleton for a runtime.
type Manager struct {
	current *Target
	ownerID string
}

// NewManager creates an empty focus manager (no zone focused).
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the active target, or nil if none is focused.
func (m *Manager) Current() *Target {
	return m.current
}

// Controller is a transient, owner-tagged handle onto a Manager's focus
// state (§3 FocusTarget). Multiple controllers may exist; only the one
// that most recently set focus may clear it, so a stale controller can't
// clobber a newer owner's focus.
type Controller struct {
	id  string
	mgr *Manager
}

// NewController creates a controller bound to mgr, identified by id.
// Callers typically generate id with github.com/google/uuid so
// concurrent controllers never collide.
func NewController(mgr *Manager, id string) *Controller {
	return &Controller{id: id, mgr: mgr}
}

// Focus sets the active target to (zoneID, component), replacing whatever
// controller previously owned it, and returns the prior target (nil if
// none). The caller emits FocusChanged{from, to} built from the returned
// value and the new target.
func (c *Controller) Focus(zoneID zone.ID, component string) (prev *Target) {
	prev = c.mgr.current
	next := Target{Zone: zoneID, Component: component}
	c.mgr.current = &next
	c.mgr.ownerID = c.id
	return prev
}

// Release clears focus, but only if c is still the current owner — a
// controller whose focus was already superseded by another owner has no
// effect, which is what makes ownership replacement deterministic (§3).
func (c *Controller) Release() (prev *Target) {
	if c.mgr.ownerID != c.id {
		return nil
	}
	prev = c.mgr.current
	c.mgr.current = nil
	c.mgr.ownerID = ""
	return prev
}
