package pawcore

// Wrap creates a capsule owning an opaque payload on behalf of foreign code.
// The tag discriminates capsule flavors at Unwrap time; the destructor, if
// non-nil, runs exactly once with the payload when the capsule is destroyed.
//
// Wrap never takes ownership of the payload on failure: a rejected payload is
// still the caller's to clean up, since no capsule exists to own it.
func (rt *Runtime) Wrap(payload interface{}, tag string, destructor func(interface{})) (Handle, error) {
	if payload == nil {
		return Handle{}, rt.Raise(ErrConfiguration, "capsule payload must not be nil")
	}
	h := rt.store(&storedCapsule{
		payload:    payload,
		tag:        tag,
		destructor: destructor,
	}, KindCapsule)
	rt.logger.DebugCat(CatCapsule, "Capsule %d wrapped (tag: %s)", h.id, tag)
	return h, nil
}

// Unwrap returns the payload of a capsule whose tag matches expectedTag. The
// payload is a borrowed view: it is valid only while the capsule is alive,
// and must never be retained past the capsule's destruction. TypeMismatch
// when the object is not a capsule or the tags differ; the destructor is not
// involved in either case.
func (rt *Runtime) Unwrap(capsule Ref, expectedTag string) (interface{}, error) {
	obj, err := rt.live(capsule)
	if err != nil {
		return nil, err
	}
	if obj.kind != KindCapsule {
		return nil, rt.Raise(ErrTypeMismatch, "expected capsule, got %s", obj.kind)
	}
	c := obj.value.(*storedCapsule)
	if c.tag != expectedTag {
		return nil, rt.Raise(ErrTypeMismatch, "capsule tag is %q, not %q", c.tag, expectedTag)
	}
	return c.payload, nil
}

// CapsuleTag returns the tag a capsule was wrapped with
func (rt *Runtime) CapsuleTag(capsule Ref) (string, error) {
	obj, err := rt.live(capsule)
	if err != nil {
		return "", err
	}
	if obj.kind != KindCapsule {
		return "", rt.Raise(ErrTypeMismatch, "expected capsule, got %s", obj.kind)
	}
	return obj.value.(*storedCapsule).tag, nil
}
