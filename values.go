package pawcore

// NewInt creates an integer object. Returns an owned handle.
func (rt *Runtime) NewInt(v int64) Handle {
	return rt.store(v, KindInt)
}

// NewString creates a string object. Returns an owned handle.
func (rt *Runtime) NewString(s string) Handle {
	return rt.store(s, KindStr)
}

// IntValue reads the referenced integer. TypeMismatch for any other kind.
func (rt *Runtime) IntValue(r Ref) (int64, error) {
	obj, err := rt.live(r)
	if err != nil {
		return 0, err
	}
	if obj.kind != KindInt {
		return 0, rt.Raise(ErrTypeMismatch, "expected int, got %s", obj.kind)
	}
	return obj.value.(int64), nil
}

// StringValue reads the referenced string. TypeMismatch for any other kind.
func (rt *Runtime) StringValue(r Ref) (string, error) {
	obj, err := rt.live(r)
	if err != nil {
		return "", err
	}
	if obj.kind != KindStr {
		return "", rt.Raise(ErrTypeMismatch, "expected string, got %s", obj.kind)
	}
	return obj.value.(string), nil
}
