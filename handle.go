package pawcore

// Handle is an owned reference to a stored object. The holder is responsible
// for calling Release exactly once, or for passing the handle into one of the
// *Steal operations, which consume it. Every constructor returns a Handle
// whose count already reflects the caller's ownership.
type Handle struct {
	id int
	rt *Runtime
}

// Ref is a borrowed, non-owning view of a stored object. It is valid only for
// the scope of whoever lent it. A Ref has no Release method: releasing a
// borrowed reference is not expressible. Use Acquire to keep the object past
// the lender's scope.
type Ref struct {
	id int
	rt *Runtime
}

// Valid reports whether the handle refers to an object.
func (h Handle) Valid() bool {
	return h.rt != nil && h.id > 0
}

// Borrow returns a non-owning view of the handle's object.
func (h Handle) Borrow() Ref {
	return Ref{id: h.id, rt: h.rt}
}

// Acquire increments the object's reference count and returns a new owned
// handle. It never fails.
func (h Handle) Acquire() Handle {
	h.rt.acquire(h.id)
	return Handle{id: h.id, rt: h.rt}
}

// Release decrements the object's reference count, destroying the object when
// the count reaches zero. Releasing a handle twice is a contract violation:
// with Config.StrictCounts the runtime panics, otherwise the violation is
// logged and ignored.
func (h Handle) Release() {
	h.rt.release(h.id)
}

// Valid reports whether the view refers to an object.
func (r Ref) Valid() bool {
	return r.rt != nil && r.id > 0
}

// Acquire upgrades the borrowed view into a new owned handle.
func (r Ref) Acquire() Handle {
	r.rt.acquire(r.id)
	return Handle{id: r.id, rt: r.rt}
}

// Scope collects owned handles acquired during a multi-step construction and
// releases them in reverse order of acquisition when closed. A construction
// that succeeds calls Detach first so the handles survive the scope.
type Scope struct {
	owned []Handle
}

// NewScope creates an empty cleanup scope.
func NewScope() *Scope {
	return &Scope{}
}

// Track registers an owned handle for release at Close and returns it
// unchanged.
func (s *Scope) Track(h Handle) Handle {
	if h.Valid() {
		s.owned = append(s.owned, h)
	}
	return h
}

// Detach abandons tracking without releasing anything. Called on the success
// path once ownership has moved elsewhere.
func (s *Scope) Detach() {
	s.owned = nil
}

// Close releases every tracked handle in reverse order of acquisition. Safe
// to call after Detach, and safe to defer.
func (s *Scope) Close() {
	for i := len(s.owned) - 1; i >= 0; i-- {
		s.owned[i].Release()
	}
	s.owned = nil
}
