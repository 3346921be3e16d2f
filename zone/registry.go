package zone

import "sort"

// State is the externally-visible state of one live zone.
type State struct {
	ID          ID
	Rect        Rect
	Content     []string
	PreRendered bool
	ContentHash uint64
	Dirty       bool
}

type entry struct {
	rect          Rect
	content       []string
	preRendered   bool
	hash          uint64
	committedHash uint64
	everCommitted bool
	dirty         bool
}

// Registry is the zone registry (C2): per-zone rectangle, content buffer,
// content hash, and dirty flag. It is not safe for concurrent use from
// multiple goroutines — the runtime coordinator (C7) is its only caller,
// on the single cooperative event-loop thread (§5).
type Registry struct {
	zones map[ID]*entry
}

// New creates an empty zone registry.
func New() *Registry {
	return &Registry{zones: make(map[ID]*entry)}
}

// ApplyLayout adds new zones, updates rects on existing zones (marking them
// dirty if the rect changed), and evicts ids no longer present in solve.
// Zones that disappear from the solve do not retain their content in case
// they reappear — caching across resizes is explicitly out of scope.
func (r *Registry) ApplyLayout(solve map[ID]Rect) {
	for id := range r.zones {
		if _, ok := solve[id]; !ok {
			delete(r.zones, id)
		}
	}
	for id, rect := range solve {
		e, ok := r.zones[id]
		if !ok {
			e = &entry{rect: rect}
			e.hash = contentHash(nil, rect)
			e.dirty = true
			r.zones[id] = e
			continue
		}
		if e.rect != rect {
			e.rect = rect
			e.hash = contentHash(e.content, e.rect)
			if e.hash != e.committedHash || !e.everCommitted {
				e.dirty = true
			}
		}
	}
}

// SetZone replaces a zone's content. It recomputes the content hash and
// sets dirty iff the new hash differs from the last committed hash;
// identical consecutive calls are a no-op on dirty state (§8 round-trip
// property).
func (r *Registry) SetZone(id ID, lines []string, preRendered bool) error {
	e, ok := r.zones[id]
	if !ok {
		return ErrNotFound
	}
	e.content = append([]string(nil), lines...)
	e.preRendered = preRendered
	e.hash = contentHash(e.content, e.rect)
	if !e.everCommitted || e.hash != e.committedHash {
		e.dirty = true
	}
	return nil
}

// Get returns the current state of a single zone.
func (r *Registry) Get(id ID) (State, bool) {
	e, ok := r.zones[id]
	if !ok {
		return State{}, false
	}
	return toState(id, e), true
}

// IterDirty returns the dirty zones in stable ascending order by id, so
// renders are reproducible (§4.2).
func (r *Registry) IterDirty() []State {
	ids := make([]ID, 0, len(r.zones))
	for id, e := range r.zones {
		if e.dirty {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]State, 0, len(ids))
	for _, id := range ids {
		out = append(out, toState(id, r.zones[id]))
	}
	return out
}

// MarkClean commits the rendered hash for a zone, clearing its dirty flag.
// Only valid if hash matches the zone's current hash at the time of the
// render pass that computed it — a stale hash is ignored (the zone was
// mutated again mid-pass and remains dirty).
func (r *Registry) MarkClean(id ID, hash uint64) {
	e, ok := r.zones[id]
	if !ok {
		return
	}
	if e.hash != hash {
		return
	}
	e.committedHash = hash
	e.everCommitted = true
	e.dirty = false
}

// MarkAllDirty marks every currently tracked zone dirty regardless of
// whether its rect or content changed. The coordinator calls this on resize
// (§4.7): "marks all zones dirty (the simplest correct choice given
// potentially changed rects)".
func (r *Registry) MarkAllDirty() {
	for _, e := range r.zones {
		e.dirty = true
	}
}

// Len returns the number of zones currently tracked (live in the last solve).
func (r *Registry) Len() int {
	return len(r.zones)
}

func toState(id ID, e *entry) State {
	return State{
		ID:          id,
		Rect:        e.rect,
		Content:     append([]string(nil), e.content...),
		PreRendered: e.preRendered,
		ContentHash: e.hash,
		Dirty:       e.dirty,
	}
}
