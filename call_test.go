package pawcore

import (
	"testing"
)

func TestInvokeBuiltin(t *testing.T) {
	rt := New(nil)

	sum := rt.NewBuiltin("sum", func(c *Call) (Handle, error) {
		var total int64
		for _, arg := range c.Args {
			v, err := c.Runtime.IntValue(arg)
			if err != nil {
				return Handle{}, err
			}
			total += v
		}
		return c.Runtime.NewInt(total), nil
	})
	defer sum.Release()

	a := rt.NewInt(2)
	b := rt.NewInt(3)
	defer a.Release()
	defer b.Release()

	result, err := rt.Invoke(sum.Borrow(), []Ref{a.Borrow(), b.Borrow()}, nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if v, _ := rt.IntValue(result.Borrow()); v != 5 {
		t.Errorf("Expected 5, got %d", v)
	}
	result.Release()

	if name, _ := rt.BuiltinName(sum.Borrow()); name != "sum" {
		t.Errorf("Expected name 'sum', got %q", name)
	}
}

func TestInvokeWithNamedArguments(t *testing.T) {
	rt := New(nil)

	greet := rt.NewBuiltin("greet", func(c *Call) (Handle, error) {
		who, exists := c.Named["who"]
		if !exists {
			return Handle{}, c.Runtime.Raise(ErrAttributeMissing, "missing named argument %q", "who")
		}
		name, err := c.Runtime.StringValue(who)
		if err != nil {
			return Handle{}, err
		}
		return c.Runtime.NewString("hello, " + name), nil
	})
	defer greet.Release()

	who := rt.NewString("paw")
	defer who.Release()

	result, err := rt.Invoke(greet.Borrow(), nil, map[string]Ref{"who": who.Borrow()})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if s, _ := rt.StringValue(result.Borrow()); s != "hello, paw" {
		t.Errorf("Unexpected result %q", s)
	}
	result.Release()

	// the same callable without the named argument fails
	if _, err := rt.Invoke(greet.Borrow(), nil, nil); err == nil {
		t.Error("Expected a failure when the named argument is missing")
	}
	if !rt.Matches(ErrAttributeMissing) {
		t.Error("Expected AttributeMissing in the slot")
	}
}

func TestInvokeNonCallable(t *testing.T) {
	rt := New(nil)

	h := rt.NewString("not a function")
	defer h.Release()

	if _, err := rt.Invoke(h.Borrow(), nil, nil); err == nil {
		t.Fatal("Expected a failure for a non-callable object")
	}
	if !rt.Matches(ErrTypeMismatch) {
		t.Error("Expected TypeMismatch in the slot")
	}
}

func TestInvokeMethodBindsReceiver(t *testing.T) {
	rt := New(nil)

	counter := rt.NewDict()
	defer counter.Release()

	zero := rt.NewInt(0)
	if err := rt.SetAttrSteal(counter.Borrow(), "count", zero); err != nil {
		t.Fatalf("SetAttrSteal failed: %v", err)
	}

	bump := rt.NewBuiltin("bump", func(c *Call) (Handle, error) {
		current, err := c.Runtime.Attr(c.Recv, "count")
		if err != nil {
			return Handle{}, err
		}
		v, err := c.Runtime.IntValue(current)
		if err != nil {
			return Handle{}, err
		}
		if err := c.Runtime.SetAttrSteal(c.Recv, "count", c.Runtime.NewInt(v+1)); err != nil {
			return Handle{}, err
		}
		return c.Runtime.NewInt(v + 1), nil
	})
	if err := rt.SetAttrSteal(counter.Borrow(), "bump", bump); err != nil {
		t.Fatalf("SetAttrSteal failed: %v", err)
	}

	for want := int64(1); want <= 3; want++ {
		result, err := rt.InvokeMethod(counter.Borrow(), "bump", nil, nil)
		if err != nil {
			t.Fatalf("InvokeMethod failed: %v", err)
		}
		if v, _ := rt.IntValue(result.Borrow()); v != want {
			t.Errorf("Expected %d, got %d", want, v)
		}
		result.Release()
	}
}

func TestInvokeMethodMissing(t *testing.T) {
	rt := New(nil)

	obj := rt.NewDict()
	defer obj.Release()

	if _, err := rt.InvokeMethod(obj.Borrow(), "vanish", nil, nil); err == nil {
		t.Fatal("Expected a failure for a missing method")
	}
	if !rt.Matches(ErrAttributeMissing) {
		t.Error("Expected AttributeMissing in the slot")
	}
}

func TestInvokeMethodNonCallableAttribute(t *testing.T) {
	rt := New(nil)

	obj := rt.NewDict()
	defer obj.Release()

	if err := rt.SetAttrSteal(obj.Borrow(), "size", rt.NewInt(4)); err != nil {
		t.Fatalf("SetAttrSteal failed: %v", err)
	}
	if _, err := rt.InvokeMethod(obj.Borrow(), "size", nil, nil); err == nil {
		t.Fatal("Expected a failure for a non-callable attribute")
	}
	if !rt.Matches(ErrTypeMismatch) {
		t.Error("Expected TypeMismatch in the slot")
	}
}

func TestNestedInvokePreservesSlot(t *testing.T) {
	rt := New(nil)

	inner := rt.NewBuiltin("inner", func(c *Call) (Handle, error) {
		return Handle{}, c.Runtime.Raise(ErrOutOfRange, "index 40 out of range")
	})
	defer inner.Release()

	outer := rt.NewBuiltin("outer", func(c *Call) (Handle, error) {
		// forwards the inner failure without touching it
		return c.Runtime.Invoke(inner.Borrow(), nil, nil)
	})
	defer outer.Release()

	_, err := rt.Invoke(outer.Borrow(), nil, nil)
	if err == nil {
		t.Fatal("Expected the nested failure to propagate")
	}

	raised := rt.Fetch()
	if raised == nil {
		t.Fatal("Expected a record in the slot")
	}
	if raised.Kind != ErrOutOfRange || raised.Message != "index 40 out of range" {
		t.Errorf("The slot must hold the innermost failure unchanged, got %s: %s",
			raised.Kind, raised.Message)
	}
	if rt.Occurred() {
		t.Error("Fetch must leave the slot empty")
	}
}
