package screen

import (
	"github.com/oodx/room/resources"
)

// ID identifies a registered screen.
type ID string

// State holds a screen's own resource map, separate from the coordinator's
// shared resource map (C1), plus its navigation queue. It is created once
// per screen id and returned on every re-activation, so
// transient state persists across switches (§4.6) unless a strategy chooses
// to reset it itself.
type State struct {
	id        ID
	resources *resources.Map
	navigator *Navigator
}

func newState(id ID) *State {
	return &State{id: id, resources: resources.New(), navigator: &Navigator{}}
}

// ID returns the owning screen's id.
func (s *State) ID() ID {
	return s.id
}

// Resources exposes this screen's private resource map, distinct from the
// runtime-wide one the coordinator owns.
func (s *State) Resources() *resources.Map {
	return s.resources
}

// Navigator returns the navigation queue strategies use to request
// activation of another screen (§4.6).
func (s *State) Navigator() *Navigator {
	return s.navigator
}
