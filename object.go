package pawcore

import (
	"fmt"
)

// store places a value in the object store with a refcount of 1 and returns
// the owned handle. Every constructor funnels through here.
func (rt *Runtime) store(value interface{}, kind Kind) Handle {
	rt.mu.Lock()
	id := rt.nextID
	rt.nextID++
	rt.objects[id] = &storedObject{
		value:    value,
		kind:     kind,
		refCount: 1,
	}
	rt.mu.Unlock()

	rt.logger.DebugCat(CatMemory, "Stored object %d (kind: %s, refcount: 1)", id, kind)
	return Handle{id: id, rt: rt}
}

// acquire increments the reference count for an object
func (rt *Runtime) acquire(id int) {
	rt.mu.Lock()
	obj, exists := rt.objects[id]
	if !exists {
		rt.mu.Unlock()
		rt.violation("acquire on destroyed object %d (use after free)", id)
		return
	}
	obj.refCount++
	count := obj.refCount
	kind := obj.kind
	rt.mu.Unlock()

	rt.logger.DebugCat(CatMemory, "Object %d refcount incremented to %d (kind: %s)", id, count, kind)
}

// release decrements the reference count and destroys the object at the
// 1 to 0 transition. The record is removed from the store before any nested
// releases run, so re-entry through a cycle cannot resurrect it.
func (rt *Runtime) release(id int) {
	rt.mu.Lock()
	obj, exists := rt.objects[id]
	if !exists {
		rt.mu.Unlock()
		rt.violation("release on destroyed object %d (double release)", id)
		return
	}
	if obj.refCount <= 0 {
		rt.mu.Unlock()
		rt.violation("release on object %d whose refcount is already zero", id)
		return
	}
	obj.refCount--
	count := obj.refCount
	kind := obj.kind
	if count > 0 {
		rt.mu.Unlock()
		rt.logger.DebugCat(CatMemory, "Object %d refcount decremented to %d (kind: %s)", id, count, kind)
		return
	}
	delete(rt.objects, id)
	rt.mu.Unlock()

	rt.logger.DebugCat(CatMemory, "Object %d refcount decremented to 0 (kind: %s)", id, kind)
	rt.destroy(id, obj)
	rt.logger.DebugCat(CatMemory, "Object %d freed (refcount reached 0)", id)
}

// destroy releases everything the object owns: container items in reverse
// order of insertion, attributes, a cursor's sequence, and a capsule's
// payload via its one-shot destructor.
func (rt *Runtime) destroy(id int, obj *storedObject) {
	switch v := obj.value.(type) {
	case *storedList:
		for i := len(v.items) - 1; i >= 0; i-- {
			rt.release(v.items[i])
		}
		v.items = nil
	case *storedDict:
		for key, valID := range v.entries {
			delete(v.entries, key)
			rt.release(valID)
		}
		v.entries = nil
	case *storedCapsule:
		if v.destructor != nil {
			destructor := v.destructor
			payload := v.payload
			v.destructor = nil
			v.payload = nil
			destructor(payload)
			rt.logger.DebugCat(CatCapsule, "Capsule %d destructor ran (tag: %s)", id, v.tag)
		} else {
			v.payload = nil
		}
	case *seqIterState:
		rt.release(v.listID)
	}

	for name, attrID := range obj.attrs {
		delete(obj.attrs, name)
		rt.release(attrID)
	}
	obj.attrs = nil
}

// violation reports a refcount contract break. These are programming errors,
// not recoverable failures: strict mode aborts, otherwise the store is left
// untouched and the break is logged.
func (rt *Runtime) violation(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if rt.config.StrictCounts {
		panic("pawcore: " + message)
	}
	rt.logger.FatalCat(CatMemory, "%s", message)
}

// lookup fetches the store record for a borrowed view. The second return is
// false when the view is stale (its object was already destroyed).
func (rt *Runtime) lookup(r Ref) (*storedObject, bool) {
	rt.mu.RLock()
	obj, exists := rt.objects[r.id]
	rt.mu.RUnlock()
	return obj, exists
}

// live raises on a stale view and otherwise returns the record. Stale views
// are a use-after-free: strict mode aborts via violation, non-strict mode
// degrades to a recoverable TypeMismatch so embedders can observe it.
func (rt *Runtime) live(r Ref) (*storedObject, error) {
	obj, exists := rt.lookup(r)
	if !exists {
		rt.violation("access to destroyed object %d (use after free)", r.id)
		return nil, rt.Raise(ErrTypeMismatch, "object %d is no longer alive", r.id)
	}
	return obj, nil
}

// KindOf returns the kind of the referenced object, or KindNone for a stale
// view.
func (rt *Runtime) KindOf(r Ref) Kind {
	obj, exists := rt.lookup(r)
	if !exists {
		return KindNone
	}
	return obj.kind
}

// RefCount returns the current reference count of the referenced object, or
// zero for a stale view. Borrowed views do not contribute to the count.
func (rt *Runtime) RefCount(r Ref) int {
	obj, exists := rt.lookup(r)
	if !exists {
		return 0
	}
	return obj.refCount
}

// LiveObjects returns how many objects the store currently holds. Useful for
// leak checks in embedding hosts and tests.
func (rt *Runtime) LiveObjects() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.objects)
}
