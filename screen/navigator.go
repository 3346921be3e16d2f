package screen

// Navigator enqueues activation requests rather than performing them: the
// screen Manager drains the queue at the end of each HandleEvent call, and only the
// last request enqueued in a cycle is honored if a strategy enqueues more
// than one (§4.6).
type Navigator struct {
	pending *ID
}

// Enqueue requests activation of id, replacing any prior pending request
// from the same cycle.
func (n *Navigator) Enqueue(id ID) {
	n.pending = &id
}

// Drain returns the pending request (nil if none) and clears it.
func (n *Navigator) Drain() *ID {
	p := n.pending
	n.pending = nil
	return p
}
