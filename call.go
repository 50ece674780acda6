package pawcore

// Call carries the arguments of one invocation into a Builtin. Args and
// Named hold borrowed views owned by the caller for the duration of the
// call; a Builtin that wants to keep one must Acquire it. Recv is the bound
// receiver for method calls and invalid for plain calls.
type Call struct {
	Runtime *Runtime
	Recv    Ref
	Args    []Ref
	Named   map[string]Ref
}

// Builtin is a callable object body. It returns an owned handle, or an
// invalid handle with a nil error when it has no value to return, or
// forwards a raised error.
type Builtin func(*Call) (Handle, error)

type storedBuiltin struct {
	name string
	fn   Builtin
}

// NewBuiltin creates a callable object. Returns an owned handle.
func (rt *Runtime) NewBuiltin(name string, fn Builtin) Handle {
	return rt.store(&storedBuiltin{name: name, fn: fn}, KindBuiltin)
}

// BuiltinName returns the name a callable was registered with
func (rt *Runtime) BuiltinName(fn Ref) (string, error) {
	obj, err := rt.live(fn)
	if err != nil {
		return "", err
	}
	if obj.kind != KindBuiltin {
		return "", rt.Raise(ErrTypeMismatch, "expected builtin, got %s", obj.kind)
	}
	return obj.value.(*storedBuiltin).name, nil
}

// Invoke calls a callable object with positional and optional named
// arguments. TypeMismatch when fn is not callable. A callee's failure is
// forwarded unchanged: Invoke neither clears nor rewrites the current-error
// slot the callee set.
func (rt *Runtime) Invoke(fn Ref, args []Ref, named map[string]Ref) (Handle, error) {
	return rt.dispatch(fn, Ref{}, args, named)
}

// InvokeMethod resolves name on obj's attribute surface and calls it with
// obj bound as the receiver. AttributeMissing when the attribute is absent,
// TypeMismatch when it is not callable.
func (rt *Runtime) InvokeMethod(obj Ref, name string, args []Ref, named map[string]Ref) (Handle, error) {
	record, err := rt.live(obj)
	if err != nil {
		return Handle{}, err
	}
	id, exists := record.attrs[name]
	if !exists {
		return Handle{}, rt.Raise(ErrAttributeMissing, "object has no attribute %q", name)
	}
	return rt.dispatch(Ref{id: id, rt: rt}, obj, args, named)
}

func (rt *Runtime) dispatch(fn Ref, recv Ref, args []Ref, named map[string]Ref) (Handle, error) {
	obj, err := rt.live(fn)
	if err != nil {
		return Handle{}, err
	}
	if obj.kind != KindBuiltin {
		return Handle{}, rt.Raise(ErrTypeMismatch, "%s object is not callable", obj.kind)
	}
	builtin := obj.value.(*storedBuiltin)

	rt.logger.DebugCat(CatCall, "Invoking %q with %d args", builtin.name, len(args))
	result, err := builtin.fn(&Call{
		Runtime: rt,
		Recv:    recv,
		Args:    args,
		Named:   named,
	})
	if err != nil {
		// forward keeps a raised error intact and promotes anything else,
		// so the slot always matches what the caller receives
		return Handle{}, rt.forward(err)
	}
	return result, nil
}
