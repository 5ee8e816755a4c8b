package tree

// Emitter delivers tree-change signals to subscribers. The projector
// always signals the root (a nil node), so subscribers re-read the whole
// visible tree. Like the rest of the core it is driven from a single
// goroutine and carries no locking.
type Emitter struct {
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(*Node)
}

// NewEmitter creates an emitter with no subscribers.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Subscribe registers a callback and returns a func that removes it.
// Subscribers are invoked in registration order.
func (e *Emitter) Subscribe(fn func(*Node)) func() {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range e.subs {
			if s.id == id {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
}

// Fire delivers the changed node to every subscriber. Delivery walks a
// snapshot, so a subscriber may unsubscribe (itself or others) without
// affecting the rest of the current round.
func (e *Emitter) Fire(n *Node) {
	subs := append([]subscriber(nil), e.subs...)
	for _, s := range subs {
		s.fn(n)
	}
}
