package pawcore

import "sort"

// NewDict creates an empty string-keyed mapping. Returns an owned handle.
func (rt *Runtime) NewDict() Handle {
	return rt.store(&storedDict{entries: make(map[string]int)}, KindDict)
}

func (rt *Runtime) asDict(r Ref) (*storedDict, error) {
	obj, err := rt.live(r)
	if err != nil {
		return nil, err
	}
	if obj.kind != KindDict {
		return nil, rt.Raise(ErrTypeMismatch, "expected dict, got %s", obj.kind)
	}
	return obj.value.(*storedDict), nil
}

// SetKey stores a value under key, acquiring its own reference. A displaced
// value is released. The caller keeps ownership of value.
func (rt *Runtime) SetKey(dict Ref, key string, value Ref) error {
	d, err := rt.asDict(dict)
	if err != nil {
		return err
	}
	rt.acquire(value.id)
	if old, exists := d.entries[key]; exists {
		rt.release(old)
	}
	d.entries[key] = value.id
	return nil
}

// SetKeySteal stores a value under key, consuming the caller's owned
// reference with no net count change. A displaced value is released. The
// handle is consumed even on failure.
func (rt *Runtime) SetKeySteal(dict Ref, key string, value Handle) error {
	d, err := rt.asDict(dict)
	if err != nil {
		value.Release()
		return err
	}
	if old, exists := d.entries[key]; exists {
		rt.release(old)
	}
	d.entries[key] = value.id
	return nil
}

// Key returns a borrowed view of the value stored under key, valid while the
// dict holds it. OutOfRange when the key is absent.
func (rt *Runtime) Key(dict Ref, key string) (Ref, error) {
	d, err := rt.asDict(dict)
	if err != nil {
		return Ref{}, err
	}
	id, exists := d.entries[key]
	if !exists {
		return Ref{}, rt.Raise(ErrOutOfRange, "dict has no key %q", key)
	}
	return Ref{id: id, rt: rt}, nil
}

// HasKey reports whether the dict holds the key
func (rt *Runtime) HasKey(dict Ref, key string) (bool, error) {
	d, err := rt.asDict(dict)
	if err != nil {
		return false, err
	}
	_, exists := d.entries[key]
	return exists, nil
}

// DeleteKey removes a key, releasing the value it held. OutOfRange when the
// key is absent.
func (rt *Runtime) DeleteKey(dict Ref, key string) error {
	d, err := rt.asDict(dict)
	if err != nil {
		return err
	}
	id, exists := d.entries[key]
	if !exists {
		return rt.Raise(ErrOutOfRange, "dict has no key %q", key)
	}
	delete(d.entries, key)
	rt.release(id)
	return nil
}

// Keys returns the dict's keys in sorted order
func (rt *Runtime) Keys(dict Ref) ([]string, error) {
	d, err := rt.asDict(dict)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(d.entries))
	for key := range d.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Merge builds a new dict holding every entry of a, then every entry of b,
// with b winning key collisions. Both inputs are left untouched; the result
// is an owned handle. On any failure the partially built dict is released
// before the error is forwarded.
func (rt *Runtime) Merge(a, b Ref) (Handle, error) {
	out := rt.NewDict()
	for _, src := range []Ref{a, b} {
		keys, err := rt.Keys(src)
		if err != nil {
			out.Release()
			return Handle{}, err
		}
		for _, key := range keys {
			value, err := rt.Key(src, key)
			if err != nil {
				out.Release()
				return Handle{}, err
			}
			if err := rt.SetKey(out.Borrow(), key, value); err != nil {
				out.Release()
				return Handle{}, err
			}
		}
	}
	return out, nil
}
