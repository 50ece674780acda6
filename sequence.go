package pawcore

// NewList creates an empty list object. Returns an owned handle.
func (rt *Runtime) NewList() Handle {
	return rt.store(&storedList{}, KindList)
}

// NewListOf creates a list holding the given items, acquiring a reference to
// each. Returns an owned handle.
func (rt *Runtime) NewListOf(items ...Ref) Handle {
	list := &storedList{items: make([]int, 0, len(items))}
	for _, item := range items {
		rt.acquire(item.id)
		list.items = append(list.items, item.id)
	}
	return rt.store(list, KindList)
}

func (rt *Runtime) asList(r Ref) (*storedList, error) {
	obj, err := rt.live(r)
	if err != nil {
		return nil, err
	}
	if obj.kind != KindList {
		return nil, rt.Raise(ErrTypeMismatch, "expected list, got %s", obj.kind)
	}
	return obj.value.(*storedList), nil
}

// Append adds an item to the end of a list, acquiring its own reference. The
// caller keeps ownership of item.
func (rt *Runtime) Append(list Ref, item Ref) error {
	l, err := rt.asList(list)
	if err != nil {
		return err
	}
	rt.acquire(item.id)
	l.items = append(l.items, item.id)
	return nil
}

// AppendSteal adds an item to the end of a list, consuming the caller's
// owned reference with no net count change. The handle is consumed even when
// the append fails, so callers only need to propagate the error.
func (rt *Runtime) AppendSteal(list Ref, item Handle) error {
	l, err := rt.asList(list)
	if err != nil {
		item.Release()
		return err
	}
	l.items = append(l.items, item.id)
	return nil
}

// SetItemSteal replaces the item at index i, consuming the caller's owned
// reference and releasing the item it displaces. The handle is consumed even
// on failure.
func (rt *Runtime) SetItemSteal(list Ref, i int, item Handle) error {
	l, err := rt.asList(list)
	if err != nil {
		item.Release()
		return err
	}
	if i < 0 || i >= len(l.items) {
		item.Release()
		return rt.Raise(ErrOutOfRange, "list index %d out of range (len %d)", i, len(l.items))
	}
	old := l.items[i]
	l.items[i] = item.id
	rt.release(old)
	return nil
}

// Item returns a borrowed view of the item at index i, valid while the list
// holds it.
func (rt *Runtime) Item(list Ref, i int) (Ref, error) {
	l, err := rt.asList(list)
	if err != nil {
		return Ref{}, err
	}
	if i < 0 || i >= len(l.items) {
		return Ref{}, rt.Raise(ErrOutOfRange, "list index %d out of range (len %d)", i, len(l.items))
	}
	return Ref{id: l.items[i], rt: rt}, nil
}

// Len returns the number of items in a list
func (rt *Runtime) Len(list Ref) (int, error) {
	l, err := rt.asList(list)
	if err != nil {
		return 0, err
	}
	return len(l.items), nil
}

// Reverse reverses a list in place
func (rt *Runtime) Reverse(list Ref) error {
	l, err := rt.asList(list)
	if err != nil {
		return err
	}
	for i, j := 0, len(l.items)-1; i < j; i, j = i+1, j-1 {
		l.items[i], l.items[j] = l.items[j], l.items[i]
	}
	return nil
}
