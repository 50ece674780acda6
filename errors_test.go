package pawcore

import (
	"errors"
	"strings"
	"testing"
)

func TestRaiseSetsSlot(t *testing.T) {
	rt := New(nil)

	if rt.Occurred() {
		t.Error("Fresh runtime must have an empty slot")
	}

	err := rt.Raise(ErrTypeMismatch, "expected %s, got %s", "list", "int")
	if err == nil {
		t.Fatal("Raise must return the record as an error")
	}
	if !rt.Occurred() {
		t.Error("Expected the slot to be set after Raise")
	}
	if !rt.Matches(ErrTypeMismatch) {
		t.Error("Expected the slot to match TypeMismatch")
	}
	if rt.Matches(ErrOutOfRange) {
		t.Error("Matches must compare kinds by identity")
	}
}

func TestRaiseOverwritesSlot(t *testing.T) {
	rt := New(nil)

	_ = rt.Raise(ErrOutOfRange, "index 5 out of range")
	_ = rt.Raise(ErrTypeMismatch, "expected str")

	raised := rt.Fetch()
	if raised == nil {
		t.Fatal("Expected a record in the slot")
	}
	if raised.Kind != ErrTypeMismatch {
		t.Errorf("Later raise must win, got %s", raised.Kind)
	}
	if raised.Cause != nil {
		t.Error("Plain Raise must not chain the displaced record")
	}
}

func TestFetchConsumesSlot(t *testing.T) {
	rt := New(nil)

	_ = rt.Raise(ErrUserRaised, "something broke")
	raised := rt.Fetch()
	if raised == nil || raised.Message != "something broke" {
		t.Fatalf("Fetch returned %v", raised)
	}
	if rt.Occurred() {
		t.Error("Slot must be empty after Fetch")
	}
	if rt.Fetch() != nil {
		t.Error("Fetch on an empty slot must return nil")
	}
}

func TestClearEmptiesSlot(t *testing.T) {
	rt := New(nil)

	_ = rt.Raise(ErrConfiguration, "bad setting")
	rt.Clear()
	if rt.Occurred() {
		t.Error("Slot must be empty after Clear")
	}
	rt.Clear() // clearing an empty slot is a no-op
}

func TestRaiseCauseChains(t *testing.T) {
	rt := New(nil)

	inner := rt.Raise(ErrOutOfRange, "index 9 out of range")
	outer := rt.RaiseCause(ErrUserRaised, inner, "lookup failed")

	raised := rt.Fetch()
	if raised.Kind != ErrUserRaised {
		t.Errorf("Expected UserRaised at the top, got %s", raised.Kind)
	}
	if raised.Cause == nil || raised.Cause.Kind != ErrOutOfRange {
		t.Errorf("Expected OutOfRange cause, got %v", raised.Cause)
	}
	if !errors.Is(outer, inner) {
		t.Error("Chained record must satisfy errors.Is against its cause")
	}
	if !strings.Contains(outer.Error(), "caused by") {
		t.Errorf("Expected the cause in the message, got %q", outer.Error())
	}
}

func TestWarnLeavesSlotAlone(t *testing.T) {
	rt := New(nil)

	var out, errOut strings.Builder
	rt.Logger().SetOutput(&out, &errOut)

	rt.Warn("mixing %s with %s is deprecated", "lists", "dicts")
	if rt.Occurred() {
		t.Error("Warn must never touch the current-error slot")
	}
	if !strings.Contains(errOut.String(), "deprecated") {
		t.Errorf("Expected the warning on the error stream, got %q", errOut.String())
	}
}

func TestSlotMirrorsOperationFailures(t *testing.T) {
	rt := New(nil)

	list := rt.NewList()
	defer list.Release()

	if _, err := rt.Item(list.Borrow(), 3); err == nil {
		t.Fatal("Expected an out-of-range failure")
	}
	if !rt.Matches(ErrOutOfRange) {
		t.Error("Operation failures must be mirrored into the slot")
	}

	// recovery: clear the slot and keep using the runtime
	rt.Clear()
	item := rt.NewInt(1)
	if err := rt.AppendSteal(list.Borrow(), item); err != nil {
		t.Fatalf("Append after recovery failed: %v", err)
	}
	if rt.Occurred() {
		t.Error("Successful operations must not set the slot")
	}
}

func TestForeignErrorsPromotedToUserRaised(t *testing.T) {
	rt := New(nil)

	fn := rt.NewBuiltin("explode", func(c *Call) (Handle, error) {
		return Handle{}, errors.New("disk on fire")
	})
	defer fn.Release()

	_, err := rt.Invoke(fn.Borrow(), nil, nil)
	if err == nil {
		t.Fatal("Expected the builtin's failure to propagate")
	}
	raised := rt.Fetch()
	if raised == nil || raised.Kind != ErrUserRaised {
		t.Errorf("Foreign errors must surface as UserRaised, got %v", raised)
	}
	if raised.Message != "disk on fire" {
		t.Errorf("Expected the original message, got %q", raised.Message)
	}
}
