package pawcore

// NewRange creates the built-in counting iterator over [start, stop) with
// the given step. A zero step is rejected up front with ConfigurationError:
// no iterator state is ever created for an endless range.
func (rt *Runtime) NewRange(start, stop, step int64) (Handle, error) {
	if step == 0 {
		return Handle{}, rt.Raise(ErrConfiguration, "range step must not be zero")
	}
	h := rt.store(&rangeIterState{current: start, stop: stop, step: step}, KindRangeIter)
	rt.logger.DebugCat(CatIter, "Range iterator %d created (%d..%d step %d)", h.id, start, stop, step)
	return h, nil
}

// Iter returns an owned iterator over the referenced object. Iterators
// return themselves (re-acquired); a list gets a fresh cursor that owns a
// reference to the list; any other object qualifies only by carrying a
// callable "next" attribute, in which case the object itself is the
// iterator. TypeMismatch otherwise.
func (rt *Runtime) Iter(r Ref) (Handle, error) {
	obj, err := rt.live(r)
	if err != nil {
		return Handle{}, err
	}
	switch obj.kind {
	case KindRangeIter, KindSeqIter:
		return r.Acquire(), nil
	case KindList:
		rt.acquire(r.id)
		return rt.store(&seqIterState{listID: r.id}, KindSeqIter), nil
	default:
		if _, exists := obj.attrs["next"]; exists {
			return r.Acquire(), nil
		}
		return Handle{}, rt.Raise(ErrTypeMismatch, "%s object is not iterable", obj.kind)
	}
}

// Next advances an iterator. It yields an owned item and true, or an invalid
// handle and false once the iterator is exhausted. Exhaustion is terminal:
// every later call reports it again. Objects iterating through a callable
// "next" attribute signal exhaustion by returning no value.
func (rt *Runtime) Next(iter Ref) (Handle, bool, error) {
	obj, err := rt.live(iter)
	if err != nil {
		return Handle{}, false, err
	}

	switch v := obj.value.(type) {
	case *rangeIterState:
		if v.done {
			return Handle{}, false, nil
		}
		if (v.step > 0 && v.current >= v.stop) || (v.step < 0 && v.current <= v.stop) {
			v.done = true
			rt.logger.DebugCat(CatIter, "Range iterator %d exhausted", iter.id)
			return Handle{}, false, nil
		}
		value := v.current
		v.current += v.step
		return rt.NewInt(value), true, nil

	case *seqIterState:
		if v.done {
			return Handle{}, false, nil
		}
		list, err := rt.asList(Ref{id: v.listID, rt: rt})
		if err != nil {
			return Handle{}, false, err
		}
		if v.index >= len(list.items) {
			v.done = true
			rt.logger.DebugCat(CatIter, "List cursor %d exhausted after %d items", iter.id, v.index)
			return Handle{}, false, nil
		}
		id := list.items[v.index]
		v.index++
		rt.acquire(id)
		return Handle{id: id, rt: rt}, true, nil

	default:
		if _, exists := obj.attrs["next"]; exists {
			result, err := rt.InvokeMethod(iter, "next", nil, nil)
			if err != nil {
				return Handle{}, false, err
			}
			if !result.Valid() {
				return Handle{}, false, nil
			}
			return result, true, nil
		}
		return Handle{}, false, rt.Raise(ErrTypeMismatch, "%s object is not an iterator", obj.kind)
	}
}

// Drain consumes an iterable to exhaustion, collecting every yielded item
// into a new owned list. Draining is all or nothing: if any advance fails,
// the partial list is released and the failure forwarded, so the caller can
// never observe a prefix of the sequence.
func (rt *Runtime) Drain(r Ref) (Handle, error) {
	it, err := rt.Iter(r)
	if err != nil {
		return Handle{}, err
	}
	defer it.Release()

	out := rt.NewList()
	count := 0
	for {
		item, ok, err := rt.Next(it.Borrow())
		if err != nil {
			out.Release()
			return Handle{}, err
		}
		if !ok {
			rt.logger.DebugCat(CatIter, "Drained %d items from object %d", count, r.id)
			return out, nil
		}
		if limit := rt.config.DrainLimit; limit > 0 && count >= limit {
			item.Release()
			out.Release()
			return Handle{}, rt.Raise(ErrConfiguration, "drain exceeded the configured limit of %d items", limit)
		}
		if err := rt.AppendSteal(out.Borrow(), item); err != nil {
			out.Release()
			return Handle{}, err
		}
		count++
	}
}
