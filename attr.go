package pawcore

// Attributes form a name -> object surface carried by every live object,
// independent of its kind. The object owns one reference per attribute value.

// SetAttr stores an attribute on obj, acquiring its own reference to value. A
// displaced attribute value is released.
func (rt *Runtime) SetAttr(obj Ref, name string, value Ref) error {
	record, err := rt.live(obj)
	if err != nil {
		return err
	}
	rt.acquire(value.id)
	if record.attrs == nil {
		record.attrs = make(map[string]int)
	}
	if old, exists := record.attrs[name]; exists {
		rt.release(old)
	}
	record.attrs[name] = value.id
	rt.logger.DebugCat(CatAttr, "Object %d attribute %q set to object %d", obj.id, name, value.id)
	return nil
}

// SetAttrSteal stores an attribute on obj, consuming the caller's owned
// reference with no net count change. The handle is consumed even on failure.
func (rt *Runtime) SetAttrSteal(obj Ref, name string, value Handle) error {
	record, err := rt.live(obj)
	if err != nil {
		value.Release()
		return err
	}
	if record.attrs == nil {
		record.attrs = make(map[string]int)
	}
	if old, exists := record.attrs[name]; exists {
		rt.release(old)
	}
	record.attrs[name] = value.id
	rt.logger.DebugCat(CatAttr, "Object %d attribute %q set to object %d", obj.id, name, value.id)
	return nil
}

// Attr returns a borrowed view of the named attribute, valid while obj holds
// it. AttributeMissing when absent.
func (rt *Runtime) Attr(obj Ref, name string) (Ref, error) {
	record, err := rt.live(obj)
	if err != nil {
		return Ref{}, err
	}
	id, exists := record.attrs[name]
	if !exists {
		return Ref{}, rt.Raise(ErrAttributeMissing, "object has no attribute %q", name)
	}
	return Ref{id: id, rt: rt}, nil
}

// HasAttr reports whether obj carries the named attribute
func (rt *Runtime) HasAttr(obj Ref, name string) (bool, error) {
	record, err := rt.live(obj)
	if err != nil {
		return false, err
	}
	_, exists := record.attrs[name]
	return exists, nil
}

// DelAttr removes an attribute, releasing the value it held.
// AttributeMissing when absent.
func (rt *Runtime) DelAttr(obj Ref, name string) error {
	record, err := rt.live(obj)
	if err != nil {
		return err
	}
	id, exists := record.attrs[name]
	if !exists {
		return rt.Raise(ErrAttributeMissing, "object has no attribute %q", name)
	}
	delete(record.attrs, name)
	rt.release(id)
	return nil
}
